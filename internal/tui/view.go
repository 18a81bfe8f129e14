package tui

import (
	"fmt"
	"strings"

	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/content"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) View() string {
	st := StylesFor(a.state.Theme)

	var main string
	if a.state.ModalOpen() {
		main = a.modalView(st, *a.state.Selected)
	} else {
		main = a.sectionView(st)
	}
	main = lipgloss.NewStyle().Padding(1, 2).Render(main)

	body := main
	if a.state.SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebarView(st), main)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, a.helpView())
}

func (a *App) sidebarView(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(content.Name))
	b.WriteString("\n\n")
	for i, s := range content.Sections {
		if i == a.section {
			b.WriteString(st.SidebarActive.Render("› " + s.Label))
		} else {
			b.WriteString(st.SidebarItem.Render("  " + s.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(themeIcon(a.state.Theme)))
	return st.Sidebar.Render(b.String())
}

func themeIcon(t viewstate.Theme) string {
	if t.IsDark() {
		return "☀️  mode clair"
	}
	return "🌙 mode sombre"
}

func (a *App) contentWidth() int {
	w := a.width - 4
	if a.state.SidebarOpen {
		w -= sidebarWidth + 2
	}
	if w < 20 {
		w = 80
	}
	return w
}

func (a *App) sectionView(st Styles) string {
	switch a.currentSection() {
	case "about":
		return a.aboutView(st)
	case "projects":
		return a.galleryView(st)
	case "skills":
		return a.skillsView(st)
	case "contact":
		return a.contactView(st)
	case "cv":
		return a.cvView(st)
	default:
		return a.heroView(st)
	}
}

func (a *App) heroView(st Styles) string {
	return strings.Join([]string{
		st.Title.Render(content.Name),
		st.Subtitle.Render(content.Tagline),
		st.Text.Render(content.Pitch + " …"),
		"",
		st.Muted.Render(content.GitHubHandle + "  " + content.GitHubURL),
	}, "\n")
}

func (a *App) aboutView(st Styles) string {
	var md strings.Builder
	md.WriteString("# A Propos de moi\n\n")
	for _, p := range content.AboutMe {
		md.WriteString(p)
		md.WriteString("\n\n")
	}
	md.WriteString("## Mon Parcours en Développement\n\n")
	for _, m := range content.Journey {
		fmt.Fprintf(&md, "- %s **%s** : %s\n", m.Icon, m.Title, m.Text)
	}
	md.WriteString("\n> ")
	md.WriteString(strings.Join(strings.Fields(content.Mission), " "))
	return renderMarkdown(md.String(), a.state.Theme, a.contentWidth())
}

func (a *App) skillsView(st Styles) string {
	tags := make([]string, 0, len(content.Skills))
	for _, s := range content.Skills {
		tags = append(tags, st.Tag.Render(s))
	}
	return strings.Join([]string{
		st.Title.Render("Mes Compétences"),
		st.Text.Width(a.contentWidth()).Render(strings.Join(strings.Fields(content.SkillsIntro), " ")),
		"",
		wrapJoin(tags, a.contentWidth()),
	}, "\n")
}

// wrapJoin lays rendered chips out left to right, breaking lines at width.
func wrapJoin(chips []string, width int) string {
	var lines []string
	var line []string
	used := 0
	for _, c := range chips {
		w := lipgloss.Width(c) + 1
		if used+w > width && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line, used = nil, 0
		}
		line = append(line, c)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

func (a *App) galleryView(st Styles) string {
	page := a.page()
	var b strings.Builder
	b.WriteString(st.Title.Render(content.ProjectsIntro))
	b.WriteString("\n")
	filter := a.state.Filter
	if filter == catalog.FilterAll {
		filter = "Tous"
	}
	b.WriteString(st.Muted.Render("Filtre : " + filter))
	b.WriteString("\n\n")

	if len(page.Items) == 0 {
		b.WriteString(st.Muted.Render("Aucun projet."))
		return b.String()
	}
	width := a.contentWidth() - 4
	for i, p := range page.Items {
		card := st.Card
		if i == a.row {
			card = st.CardSelected
		}
		text := st.Subtitle.Render(p.Title) + "\n" +
			st.Text.Width(width).Render(p.Description) + "\n" +
			st.Muted.Render(strings.Join(p.Technologies, " · "))
		b.WriteString(card.Width(width).Render(text))
		b.WriteString("\n")
	}
	if page.Total > 1 {
		b.WriteString(st.Muted.Render(fmt.Sprintf("Page %d sur %d", page.Number, page.Total)))
	}
	return b.String()
}

func (a *App) modalView(st Styles, p catalog.Project) string {
	width := a.contentWidth() - 6
	var md strings.Builder
	md.WriteString(p.LongDescription)
	if p.HasDiagram() {
		md.WriteString("\n\n### Diagramme UML\n\n```mermaid\n")
		md.WriteString(strings.TrimSpace(p.UML))
		md.WriteString("\n```\n")
	}

	parts := []string{
		st.Title.Render(p.Title),
		st.Muted.Render(strings.Join(p.Technologies, " · ")),
		renderMarkdown(md.String(), a.state.Theme, width),
	}
	if p.GitHub != "" {
		parts = append(parts, st.Text.Render("GitHub : "+p.GitHub))
	}
	if p.Demo != "" {
		parts = append(parts, st.Text.Render("Démo : "+p.Demo))
	}
	parts = append(parts, "", st.Muted.Render("esc Fermer"))
	return st.Modal.Width(width).Render(strings.Join(parts, "\n"))
}

func (a *App) contactView(st Styles) string {
	input := func(focused bool) lipgloss.Style {
		if focused && a.editing {
			return st.InputFocused
		}
		return st.Input
	}
	w := a.formWidth()
	a.name.Width = w - 4
	a.email.Width = w - 4

	parts := []string{
		st.Title.Render("Me contacter"),
		st.Text.Render(content.ContactIntro),
		"",
		input(a.field == fieldName).Width(w).Render(a.name.View()),
		input(a.field == fieldEmail).Width(w).Render(a.email.View()),
		input(a.field == fieldMessage).Width(w).Render(a.message.View()),
	}

	sub := a.state.Submission
	switch sub.Kind {
	case viewstate.SubmissionSending:
		parts = append(parts, a.spinner.View()+" "+st.Muted.Render(sub.Message))
	case viewstate.SubmissionSent:
		parts = append(parts, st.Success.Render(sub.Message))
	case viewstate.SubmissionFailed, viewstate.SubmissionInvalid:
		parts = append(parts, st.Error.Render(sub.Message))
	}

	parts = append(parts, "")
	for _, l := range content.Links {
		parts = append(parts, st.Muted.Render(l.Label+"  "+l.URL))
	}
	return strings.Join(parts, "\n")
}

func (a *App) cvView(st Styles) string {
	parts := []string{
		st.Title.Render("Mon CV"),
		st.Text.Width(a.contentWidth()).Render(content.CVIntro),
	}
	if a.state.CVOpened {
		parts = append(parts, "", st.Success.Render(content.CVManualHint), st.Text.Render(a.opts.CVPath))
	}
	return strings.Join(parts, "\n")
}

func (a *App) helpView() string {
	k := a.keys
	var bindings []key.Binding
	switch {
	case a.editing:
		bindings = []key.Binding{k.NextField, k.Submit, k.Close}
	case a.state.ModalOpen():
		bindings = []key.Binding{k.Close, k.Theme}
	default:
		bindings = []key.Binding{k.NextSection, k.Theme, k.Sidebar}
		switch a.currentSection() {
		case "projects":
			bindings = append(bindings, k.Up, k.Down, k.PrevPage, k.NextPage, k.Filter, k.Open)
		case "contact":
			bindings = append(bindings, k.Edit, k.Submit)
		case "cv":
			bindings = append(bindings, k.OpenCV)
		}
		bindings = append(bindings, k.Quit)
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(a.help.ShortHelpView(bindings))
}
