package viewstate

import (
	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
)

// Theme is the site colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a persisted value to a Theme, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) IsDark() bool { return t == ThemeDark }

// SubmissionKind is the lifecycle stage of the contact form.
type SubmissionKind int

const (
	SubmissionIdle SubmissionKind = iota
	SubmissionInvalid
	SubmissionSending
	SubmissionSent
	SubmissionFailed
)

func (k SubmissionKind) String() string {
	switch k {
	case SubmissionInvalid:
		return "invalid"
	case SubmissionSending:
		return "sending"
	case SubmissionSent:
		return "sent"
	case SubmissionFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Submission is the status line shown under the contact form.
type Submission struct {
	Kind    SubmissionKind
	Message string
}

func (s Submission) Pending() bool { return s.Kind == SubmissionSending }

// Status texts shown to the visitor.
const (
	MsgEmptyFields    = "Veuillez remplir tous les champs correctement."
	MsgInvalidEmail   = "Veuillez entrer un email valide."
	MsgSending        = "Envoi en cours..."
	MsgSent           = "Message envoyé avec succès !"
	MsgFailedPrefix   = "Erreur lors de l'envoi : "
	MsgFailedFallback = "Vérifiez votre connexion ou les clés EmailJS."
)

// State is everything one visitor session renders from.
type State struct {
	Theme       Theme
	SidebarOpen bool
	Filter      string
	Cursor      int
	Selected    *catalog.Project
	Form        contact.Form
	Submission  Submission
	CVOpened    bool
}

// ModalOpen reports whether a project dialog is showing.
func (s State) ModalOpen() bool { return s.Selected != nil }
