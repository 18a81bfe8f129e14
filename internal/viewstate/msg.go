package viewstate

import "github.com/adekomen/portfolio/internal/contact"

// Msg is a user or completion event fed to Model.Update.
type Msg interface{ isMsg() }

type (
	ToggleTheme   struct{}
	ToggleSidebar struct{}
	// Resized reports the current viewport width in the shell's unit
	// (CSS pixels on the web, columns in the terminal).
	Resized   struct{ Width int }
	SetFilter struct{ Tag string }
	NextPage  struct{}
	PrevPage  struct{}
	GotoPage  struct{ Page int }
	// SelectProject opens the project dialog; unknown ids are ignored.
	SelectProject struct{ ID int }
	CloseModal    struct{}
	// EditForm replaces the three contact fields.
	EditForm struct{ Form contact.Form }
	Submit   struct{}
	// SubmitForm replaces the fields and submits them in one step.
	SubmitForm struct{ Form contact.Form }
	// Delivered completes a pending submission.
	Delivered struct{ Err error }
	OpenCV    struct{}
)

func (ToggleTheme) isMsg()   {}
func (ToggleSidebar) isMsg() {}
func (Resized) isMsg()       {}
func (SetFilter) isMsg()     {}
func (NextPage) isMsg()      {}
func (PrevPage) isMsg()      {}
func (GotoPage) isMsg()      {}
func (SelectProject) isMsg() {}
func (CloseModal) isMsg()    {}
func (EditForm) isMsg()      {}
func (Submit) isMsg()        {}
func (SubmitForm) isMsg()    {}
func (Delivered) isMsg()     {}
func (OpenCV) isMsg()        {}

// Effect is work Update asks the shell to perform. Nil means nothing to do.
type Effect interface{ isEffect() }

// PersistTheme asks the shell to store the new theme and apply it.
type PersistTheme struct{ Theme Theme }

// Deliver asks the shell to send Form and report back with Delivered.
type Deliver struct{ Form contact.Form }

func (PersistTheme) isEffect() {}
func (Deliver) isEffect()      {}
