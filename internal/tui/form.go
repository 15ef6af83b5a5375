package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is a single labeled input in an entity form.
type formField struct {
	label    string
	input    textinput.Model
	required bool
}

// newFormField creates a form field with the shared input styling.
func newFormField(label, placeholder string, required bool) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 200
	ti.Width = 40
	return formField{
		label:    label,
		input:    ti,
		required: required,
	}
}

// newPasswordField creates a form field that hides its value.
func newPasswordField(label string, required bool) formField {
	f := newFormField(label, "", required)
	f.input.EchoMode = textinput.EchoPassword
	return f
}

// entityForm holds the local draft of a create/update view. The draft
// survives submit failures so the user can correct it.
type entityForm struct {
	title  string
	fields []formField
	focus  int
}

// newEntityForm creates a form with the first field focused.
func newEntityForm(title string, fields ...formField) entityForm {
	f := entityForm{title: title, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// Next moves focus to the next field, wrapping around.
func (f *entityForm) Next() {
	f.setFocus((f.focus + 1) % len(f.fields))
}

// Prev moves focus to the previous field, wrapping around.
func (f *entityForm) Prev() {
	f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

func (f *entityForm) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[f.focus].input.Focus()
}

// Update routes a message to the focused input.
func (f *entityForm) Update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// Value returns the trimmed value of the i-th field.
func (f entityForm) Value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// SetValue sets the i-th field's draft value (used when editing an
// existing record).
func (f *entityForm) SetValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

// MissingField returns the label of the first required field that is
// empty, or empty when the draft passes presence validation.
func (f entityForm) MissingField() string {
	for _, field := range f.fields {
		if field.required && strings.TrimSpace(field.input.Value()) == "" {
			return field.label
		}
	}
	return ""
}

// View renders the form fields with the focused label highlighted.
func (f entityForm) View() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		labelStyle := FormLabelStyle
		if i == f.focus {
			labelStyle = FormLabelFocusedStyle
		}
		label := field.label
		if field.required {
			label += " *"
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HintStyle.Render("tab next field • enter submit • esc cancel"))
	return b.String()
}
