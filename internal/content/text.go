package content

var (
	Name         = "ADESU-FLS"
	Tagline      = "Architecte logiciel."
	Pitch        = "Création d'applications modernes et scalables avec"
	GitHubHandle = "@adekomen"
	GitHubURL    = "https://github.com/adekomen"

	ProjectsIntro = "Mes Projets"

	SkillsIntro = `À travers mon parcours, j’ai eu la chance d’explorer et de maîtriser diverses technologies,
	toujours avec la même curiosité et l’envie de créer des solutions qui ont du sens et qui apportent
	de la valeur aux utilisateurs.`

	Skills = []string{
		"JavaScript", "PHP", "TypeScript", "React", "Node.js", "MongoDB", "MySQL",
		"Docker", "UML", "SQL", "Flutter", "Laravel", "Angular", "Python",
	}

	AboutMe = []string{
		`Salut, moi c’est **Kokouvi François ADESU**, mais tu peux m’appeler François ! Je suis un développeur
		passionné avec un faible pour l’architecture logicielle et les interfaces utilisateur qui en jettent.
		Mon parcours m’a permis de construire des bases solides en programmation, et j’ai déjà plusieurs projets
		sympas à mon actif, comme une plateforme de gestion de bibliothèque en ligne, une app de restauration avec
		Angular, une app mobile de gestion d'habitude avec flutter...`,

		`Ce qui me fait vibrer, c’est de créer des solutions techniques qui allient robustesse et simplicité
		d’utilisation. J’adore explorer de nouvelles technos et trouver des moyens innovants pour résoudre des
		problèmes, et je prends un vrai plaisir à développer des apps mobiles avec Flutter, où je peux laisser
		libre cours à ma créativité pour offrir des expériences fluides et modernes. Pour moi, un bon projet,
		c’est un savant mélange de code propre, d’architecture bien pensée et d’une expérience utilisateur fluide.`,

		`Mon approche ? Je commence toujours par comprendre les besoins, puis je conçois une architecture
		modulaire avant de plonger dans le code. J’aime bien utiliser des outils comme UML pour visualiser mes
		idées, et je m’assure que tout reste scalable et maintenable. En dehors du dev, tu me trouveras
		probablement en train de suivre des séries ou d'être sur un terrain de foot ou de rêver à mon prochain
		voyage au Qatar, un pays qui m’inspire énormément !`,

		`Si tu veux échanger sur un projet, une idée ou juste papoter tech, n’hésite pas à me contacter via la
		section Contact. Je suis toujours partant pour collaborer ou discuter d’opportunités excitantes !`,
	}

	Journey = []Milestone{
		{
			Icon:  "code",
			Title: "Débuts en Programmation",
			Text: `Initiation aux algorithmes et POO avec Java. Premiers projets web (HTML/CSS/JS) et découverte
			des bases de données relationnelles.`,
		},
		{
			Icon:  "cpu",
			Title: "Architecture Logicielle",
			Text: `Conception de systèmes modulaires avec microservices. Expérience avec Docker, API REST.
			Développement d'applications fullstack.`,
		},
		{
			Icon:  "smartphone",
			Title: "Passion Web/Mobile",
			Text: `Création d'interfaces dynamiques avec React pour le Web et Flutter pour le Mobile. Particulièrement
			intéressé par les PWA(Progressive Web Apps) et l'optimisation des performances. À la recherche
			d'opportunités pour concilier une architecture robuste et UX moderne.`,
		},
	}

	Mission = `"Concevoir des solutions techniques élégantes qui marient qualité architecturale et expérience
	utilisateur exceptionnelle, particulièrement dans les domaines web et mobile."`

	ContactIntro = "Envie de collaborer ou de discuter tech ? Envoyez-moi un message !"

	CVIntro        = "Consultez ou téléchargez mon CV pour découvrir mon parcours et mes compétences."
	CVOpened       = "Le CV a été ouvert dans un nouvel onglet."
	CVPopupBlocked = `L’ouverture du CV dans un nouvel onglet a été bloquée. Veuillez autoriser les pop-ups pour ce
	site ou utiliser le lien ci-dessous pour ouvrir le CV manuellement.`
	CVManualHint    = "Si le CV ne s’est pas ouvert (par exemple, à cause d’un bloqueur de pop-ups), vous pouvez l’ouvrir manuellement :"
	CVDownloadError = "Erreur : Le fichier CV n’a pas pu être téléchargé. Utilisez le lien alternatif ci-dessous."

	FooterTagline = "Développeur passionné, spécialisé en architecture logicielle et UX moderne."

	Links = []Link{
		{Label: "(+228) 99553976 (Appel)", URL: "tel:+22899553976", Kind: "phone"},
		{Label: "Chat sur WhatsApp", URL: "https://wa.me/+22946620072?text=Salut%20François,%20je%20viens%20de%20voir%20ton%20portfolio%20et%20j'aimerais%20discuter%20d'un%20projet%20!", Kind: "whatsapp"},
		{Label: "k.francoisadesu@gmail.com", URL: "mailto:k.francoisadesu@gmail.com", Kind: "mail"},
		{Label: "GitHub - Code source", URL: "https://github.com/adekomen/portfolio.git", Kind: "github"},
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/kokouvi-fran%C3%A7ois-adesu-179347290/", Kind: "linkedin"},
	}
)

type Milestone struct {
	Icon  string
	Title string
	Text  string
}

type Link struct {
	Label string
	URL   string
	Kind  string
}

// Section is one entry of the sidebar navigation.
type Section struct {
	ID    string
	Label string
}

var Sections = []Section{
	{ID: "home", Label: "Accueil"},
	{ID: "about", Label: "À propos"},
	{ID: "projects", Label: "Projets"},
	{ID: "skills", Label: "Compétences"},
	{ID: "contact", Label: "Contact"},
	{ID: "cv", Label: "CV"},
}
