package viewstate

import (
	"errors"

	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
)

// Breakpoint is the minimum viewport width at which the sidebar is shown.
type Breakpoint int

const (
	// WebBreakpoint matches the md: breakpoint of the site stylesheet, in CSS px.
	WebBreakpoint Breakpoint = 768
	// TerminalBreakpoint is the same decision in terminal columns.
	TerminalBreakpoint Breakpoint = 100
)

func (b Breakpoint) SidebarOpen(width int) bool {
	return width >= int(b)
}

// Model holds the fixed inputs of the update function.
type Model struct {
	Catalog    *catalog.Catalog
	PageSize   int
	Breakpoint Breakpoint
}

func (m Model) pageSize() int {
	if m.PageSize <= 0 {
		return catalog.DefaultPageSize
	}
	return m.PageSize
}

// Init builds the session start state. width <= 0 means unknown and leaves
// the sidebar open.
func (m Model) Init(theme Theme, width int) State {
	s := State{
		Theme:       theme,
		SidebarOpen: true,
		Filter:      catalog.FilterAll,
		Cursor:      1,
	}
	if width > 0 {
		s.SidebarOpen = m.Breakpoint.SidebarOpen(width)
	}
	return s
}

// Visible derives the current gallery page from s.
func (m Model) Visible(s State) catalog.Page {
	return catalog.Paginate(m.Catalog.Filter(s.Filter), s.Cursor, m.pageSize())
}

func (m Model) pageCount(filter string) int {
	return catalog.PageCount(len(m.Catalog.Filter(filter)), m.pageSize())
}

// Update applies msg to s and returns the next state with the effect the
// shell must run, if any. It never performs I/O.
func (m Model) Update(s State, msg Msg) (State, Effect) {
	switch msg := msg.(type) {
	case ToggleTheme:
		s.Theme = s.Theme.Toggle()
		return s, PersistTheme{Theme: s.Theme}

	case ToggleSidebar:
		s.SidebarOpen = !s.SidebarOpen

	case Resized:
		if msg.Width > 0 {
			s.SidebarOpen = m.Breakpoint.SidebarOpen(msg.Width)
		}

	case SetFilter:
		tag := msg.Tag
		if tag == "" || !m.Catalog.IsFilter(tag) {
			tag = catalog.FilterAll
		}
		if tag != s.Filter {
			s.Filter = tag
			s.Cursor = 1
		}
		s.Cursor = catalog.ClampCursor(s.Cursor, m.pageCount(s.Filter))

	case NextPage:
		s.Cursor = catalog.ClampCursor(s.Cursor+1, m.pageCount(s.Filter))

	case PrevPage:
		s.Cursor = catalog.ClampCursor(s.Cursor-1, m.pageCount(s.Filter))

	case GotoPage:
		s.Cursor = catalog.ClampCursor(msg.Page, m.pageCount(s.Filter))

	case SelectProject:
		if p, ok := m.Catalog.ByID(msg.ID); ok {
			s.Selected = &p
		}

	case CloseModal:
		s.Selected = nil

	case EditForm:
		if !s.Submission.Pending() {
			s.Form = msg.Form
		}

	case Submit:
		return m.submit(s)

	case SubmitForm:
		if !s.Submission.Pending() {
			s.Form = msg.Form
		}
		return m.submit(s)

	case Delivered:
		if !s.Submission.Pending() {
			return s, nil
		}
		if msg.Err == nil {
			s.Form = contact.Form{}
			s.Submission = Submission{Kind: SubmissionSent, Message: MsgSent}
			return s, nil
		}
		text := contact.ReportedText(msg.Err)
		if text == "" {
			text = MsgFailedFallback
		}
		s.Submission = Submission{Kind: SubmissionFailed, Message: MsgFailedPrefix + text}

	case OpenCV:
		s.CVOpened = true
	}
	return s, nil
}

func (m Model) submit(s State) (State, Effect) {
	// A delivery is already in flight; a second one would duplicate the message.
	if s.Submission.Pending() {
		return s, nil
	}
	switch err := s.Form.Validate(); {
	case errors.Is(err, contact.ErrEmptyField):
		s.Submission = Submission{Kind: SubmissionInvalid, Message: MsgEmptyFields}
		return s, nil
	case errors.Is(err, contact.ErrInvalidEmail):
		s.Submission = Submission{Kind: SubmissionInvalid, Message: MsgInvalidEmail}
		return s, nil
	}
	s.Submission = Submission{Kind: SubmissionSending, Message: MsgSending}
	return s, Deliver{Form: s.Form}
}
