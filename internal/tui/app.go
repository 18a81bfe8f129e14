package tui

import (
	"context"
	"time"

	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
	"github.com/adekomen/portfolio/internal/content"
	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/reqlog"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 22

// Options configures the terminal front-end.
type Options struct {
	Model   viewstate.Model
	Prefs   prefs.Store
	Contact contact.Deliverer
	CVPath  string
	// DeliveryTimeout bounds one contact delivery. Zero means 20s.
	DeliveryTimeout time.Duration
}

type (
	deliveredMsg  struct{ err error }
	themeSavedMsg struct{ err error }
)

const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldCount
)

// App is the bubbletea model. Everything the web shell keeps per session
// lives in state; the rest is terminal-only presentation.
type App struct {
	opts  Options
	state viewstate.State
	keys  keyMap

	width, height int
	section       int
	row           int
	editing       bool
	field         int
	notice        string

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	spinner spinner.Model
	help    help.Model
}

// New builds the app with the persisted theme.
func New(ctx context.Context, opts Options) *App {
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemory()
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = 20 * time.Second
	}
	theme := prefs.LoadTheme(ctx, opts.Prefs, prefs.ThemeKeyFor(""))

	name := textinput.New()
	name.Placeholder = "Votre nom"
	name.CharLimit = 120
	email := textinput.New()
	email.Placeholder = "Votre email"
	email.CharLimit = 254
	message := textarea.New()
	message.Placeholder = "Votre message"
	message.ShowLineNumbers = false
	message.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		opts:    opts,
		state:   opts.Model.Init(theme, 0),
		keys:    defaultKeys(),
		name:    name,
		email:   email,
		message: message,
		spinner: sp,
		help:    help.New(),
	}
}

// State returns the current view state.
func (a *App) State() viewstate.State { return a.state }

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *App) currentSection() string {
	return content.Sections[a.section].ID
}

func (a *App) page() catalog.Page {
	return a.opts.Model.Visible(a.state)
}

// dispatch feeds msg to the model and turns the effect into a command.
func (a *App) dispatch(msg viewstate.Msg) tea.Cmd {
	cursor, filter := a.state.Cursor, a.state.Filter
	var eff viewstate.Effect
	a.state, eff = a.opts.Model.Update(a.state, msg)
	if a.state.Cursor != cursor || a.state.Filter != filter {
		a.row = 0
	}
	if n := len(a.page().Items); a.row >= n {
		a.row = max(n-1, 0)
	}
	switch eff := eff.(type) {
	case viewstate.PersistTheme:
		return a.saveTheme(eff.Theme)
	case viewstate.Deliver:
		a.blurForm()
		return tea.Batch(a.deliver(eff.Form), a.spinner.Tick)
	}
	return nil
}

func (a *App) saveTheme(theme viewstate.Theme) tea.Cmd {
	store := a.opts.Prefs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return themeSavedMsg{err: prefs.SaveTheme(ctx, store, prefs.ThemeKeyFor(""), theme)}
	}
}

func (a *App) deliver(form contact.Form) tea.Cmd {
	d, timeout := a.opts.Contact, a.opts.DeliveryTimeout
	return func() tea.Msg {
		if d == nil {
			return deliveredMsg{err: &contact.DeliveryError{Text: "aucun service d'envoi configuré"}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deliveredMsg{err: d.Deliver(ctx, form)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.message.SetWidth(a.formWidth())
		return a, a.dispatch(viewstate.Resized{Width: msg.Width})

	case themeSavedMsg:
		if msg.err != nil {
			reqlog.New(context.Background()).Error("save_theme", msg.err)
		}
		return a, nil

	case deliveredMsg:
		a.dispatch(viewstate.Delivered{Err: msg.err})
		if a.state.Submission.Kind == viewstate.SubmissionSent {
			a.resetForm()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.state.Submission.Pending() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.editing {
		return a.handleFormKey(msg)
	}
	if a.state.ModalOpen() {
		switch {
		case matches(msg, a.keys.Close), matches(msg, a.keys.Quit):
			return a, a.dispatch(viewstate.CloseModal{})
		case matches(msg, a.keys.Theme):
			return a, a.dispatch(viewstate.ToggleTheme{})
		}
		return a, nil
	}

	switch {
	case matches(msg, a.keys.Quit):
		return a, tea.Quit
	case matches(msg, a.keys.Theme):
		return a, a.dispatch(viewstate.ToggleTheme{})
	case matches(msg, a.keys.Sidebar):
		return a, a.dispatch(viewstate.ToggleSidebar{})
	case matches(msg, a.keys.NextSection):
		a.section = (a.section + 1) % len(content.Sections)
		return a, nil
	case matches(msg, a.keys.PrevSection):
		a.section = (a.section + len(content.Sections) - 1) % len(content.Sections)
		return a, nil
	}

	switch a.currentSection() {
	case "projects":
		return a, a.handleGalleryKey(msg)
	case "contact":
		if matches(msg, a.keys.Edit) && !a.state.Submission.Pending() {
			a.editing = true
			a.field = fieldName
			return a, a.focusField()
		}
		if matches(msg, a.keys.Submit) {
			return a, a.dispatch(viewstate.Submit{})
		}
	case "cv":
		if matches(msg, a.keys.OpenCV) {
			return a, a.dispatch(viewstate.OpenCV{})
		}
	}
	return a, nil
}

func (a *App) handleGalleryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case matches(msg, a.keys.NextPage):
		return a.dispatch(viewstate.NextPage{})
	case matches(msg, a.keys.PrevPage):
		return a.dispatch(viewstate.PrevPage{})
	case matches(msg, a.keys.Filter):
		return a.dispatch(viewstate.SetFilter{Tag: a.nextFilter()})
	case matches(msg, a.keys.Up):
		if a.row > 0 {
			a.row--
		}
	case matches(msg, a.keys.Down):
		if a.row < len(a.page().Items)-1 {
			a.row++
		}
	case matches(msg, a.keys.Open):
		items := a.page().Items
		if a.row < len(items) {
			return a.dispatch(viewstate.SelectProject{ID: items[a.row].ID})
		}
	}
	return nil
}

// nextFilter cycles all -> each technology -> all.
func (a *App) nextFilter() string {
	filters := append([]string{catalog.FilterAll}, a.opts.Model.Catalog.Technologies()...)
	for i, f := range filters {
		if f == a.state.Filter {
			return filters[(i+1)%len(filters)]
		}
	}
	return catalog.FilterAll
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, a.keys.Close):
		a.editing = false
		a.blurForm()
		return a, nil
	case matches(msg, a.keys.NextField):
		a.field = (a.field + 1) % fieldCount
		return a, a.focusField()
	case matches(msg, a.keys.Submit):
		a.editing = false
		return a, a.dispatch(viewstate.Submit{})
	}

	var cmd tea.Cmd
	switch a.field {
	case fieldName:
		a.name, cmd = a.name.Update(msg)
	case fieldEmail:
		a.email, cmd = a.email.Update(msg)
	default:
		a.message, cmd = a.message.Update(msg)
	}
	a.dispatch(viewstate.EditForm{Form: contact.Form{
		Name:    a.name.Value(),
		Email:   a.email.Value(),
		Message: a.message.Value(),
	}})
	return a, cmd
}

func (a *App) focusField() tea.Cmd {
	a.blurForm()
	switch a.field {
	case fieldName:
		return a.name.Focus()
	case fieldEmail:
		return a.email.Focus()
	default:
		return a.message.Focus()
	}
}

func (a *App) blurForm() {
	a.name.Blur()
	a.email.Blur()
	a.message.Blur()
}

func (a *App) resetForm() {
	a.name.Reset()
	a.email.Reset()
	a.message.Reset()
}

func (a *App) formWidth() int {
	w := a.width - 6
	if a.state.SidebarOpen {
		w -= sidebarWidth + 2
	}
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
