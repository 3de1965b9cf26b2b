package components

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/state"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

// Form field order
const (
	fieldAuthor = iota
	fieldRating
	fieldComment
	fieldCount
)

var fieldNames = [fieldCount]string{state.FieldAuthor, state.FieldRating, state.FieldComment}
var fieldLabels = [fieldCount]string{"Name", "Rating (1-5)", "Comment"}

// ReviewForm is the modal used to write a review
type ReviewForm struct {
	visible bool
	title   string
	focus   int
	inputs  [fieldCount]textinput.Model
	errs    map[string]string
}

// NewReviewForm creates a hidden review form
func NewReviewForm() ReviewForm {
	var f ReviewForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldAuthor].Placeholder = "Your name"
	f.inputs[fieldAuthor].CharLimit = 60
	f.inputs[fieldRating].Placeholder = "5"
	f.inputs[fieldRating].CharLimit = 1
	f.inputs[fieldComment].Placeholder = "At least 10 characters"
	f.inputs[fieldComment].CharLimit = 1000
	return f
}

// Show resets and displays the form for a movie
func (f *ReviewForm) Show(title string) {
	f.visible = true
	f.title = title
	f.errs = nil
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldAuthor
	f.inputs[fieldAuthor].Focus()
}

// Hide dismisses the form
func (f *ReviewForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f ReviewForm) IsVisible() bool {
	return f.visible
}

// Input returns the entered review. A rating that is not a whole number
// becomes 0 and is rejected by validation.
func (f ReviewForm) Input() domain.ReviewInput {
	rating, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldRating].Value()))
	if err != nil {
		rating = 0
	}
	return domain.ReviewInput{
		Author:  f.inputs[fieldAuthor].Value(),
		Rating:  rating,
		Comment: f.inputs[fieldComment].Value(),
	}
}

// SetErrors shows field messages from a validation error. Other errors clear them.
func (f *ReviewForm) SetErrors(err error) {
	f.errs = nil
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	f.errs = make(map[string]string, len(verr.Fields))
	for _, fe := range verr.Fields {
		f.errs[fe.Field] = fe.Message
	}
}

// Error returns the message shown beside a field
func (f ReviewForm) Error(field string) string {
	return f.errs[field]
}

func (f *ReviewForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update handles input events, returns (form, cmd, submitted)
func (f ReviewForm) Update(msg tea.Msg) (ReviewForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, false
		case "enter":
			if f.focus < fieldComment {
				f.setFocus(f.focus + 1)
				return f, nil, false
			}
			return f, nil, true
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the form
func (f ReviewForm) View() string {
	if !f.visible {
		return ""
	}

	rows := []string{styles.TitleStyle.Render(f.title), ""}
	for i := range f.inputs {
		label := styles.SubtitleStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = styles.AccentStyle.Render(fieldLabels[i])
		}
		rows = append(rows, label, f.inputs[i].View())
		if msg := f.errs[fieldNames[i]]; msg != "" {
			rows = append(rows, styles.ErrorStyle.Render(msg))
		}
		rows = append(rows, "")
	}
	rows = append(rows, styles.DimStyle.Render("tab next field · enter submit · esc cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
