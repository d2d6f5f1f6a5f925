package web

// Profile is the static owner information shown on the page.
type Profile struct {
	Name     string
	Title    string
	Location string
	Email    string
	Phone    string
	Address  string
	GitHub   string
	LinkedIn string
}

// Project is one gallery entry.
type Project struct {
	Title   string
	Desc    string
	DemoURL string
}

var profile = Profile{
	Name:     "Marsa Dembi",
	Title:    "Front-End Developer & UI Designer",
	Location: "Sumedang, Indonesia",
	Email:    "marsa@email.com",
	Phone:    "+62 813-1234-5678",
	Address:  "Tanjungsari, Sumedang",
	GitHub:   "#",
	LinkedIn: "#",
}

var skills = []string{
	"HTML", "CSS", "JavaScript", "React",
	"Next.js", "Node.js", "Tailwind CSS", "Git",
	"REST API", "MongoDB", "UI/UX Design", "Figma",
}

var projects = []Project{
	{
		Title:   "Website cv-online",
		Desc:    "An online CV website",
		DemoURL: "https://chalenge-p3.vercel.app/",
	},
	{
		Title:   "Project Design UI/UX",
		Desc:    "App design for a dessert shop",
		DemoURL: "https://www.figma.com/design/zvU0CPC5EuCdHgxHGalTBe/Untitled--Copy-?node-id=1-3&t=luLdWiQqmkcOptWW-1",
	},
	{
		Title:   "Project Design UI/UX",
		Desc:    "App design for an online store",
		DemoURL: "https://www.figma.com/design/t6ka1FzSMm2fyTdrkRWIOp/Untitled?t=luLdWiQqmkcOptWW-1",
	},
}

var sections = []string{"home", "skills", "portfolio", "contact"}
