// Package input turns terminal events into game intents
package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/constants"
)

// Translator converts tcell events using a key table
// Mouse columns are mapped to field pixels through the field origin
type Translator struct {
	table *KeyTable

	// lastButtons suppresses repeated drops while a button is held
	lastButtons tcell.ButtonMask
}

// NewTranslator creates a translator; nil table uses DefaultKeyTable
func NewTranslator(table *KeyTable) *Translator {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Translator{table: table}
}

// Translate maps one event to an intent; unmapped events yield IntentNone
func (t *Translator) Translate(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(ev)
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

func (t *Translator) translateKey(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		if it, ok := t.table.Runes[ev.Rune()]; ok {
			return Intent{Type: it}
		}
		return Intent{}
	}
	if it, ok := t.table.SpecialKeys[ev.Key()]; ok {
		return Intent{Type: it}
	}
	return Intent{}
}

func (t *Translator) translateMouse(ev *tcell.EventMouse) Intent {
	x, _ := ev.Position()
	px := ColumnToPixel(x)

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && t.lastButtons&tcell.Button1 == 0
	t.lastButtons = buttons

	if pressed {
		return Intent{Type: IntentDrop, GuideX: px, HasGuide: true}
	}
	return Intent{Type: IntentGuide, GuideX: px, HasGuide: true}
}

// ColumnToPixel returns the field pixel at the center of a terminal column, clamped to the field
func ColumnToPixel(col int) int {
	px := (col-constants.FieldOriginX)*constants.CellPixels + constants.CellPixels/2
	return min(max(px, 0), constants.FieldWidthPixels)
}
