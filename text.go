package main

type NavLink struct {
	Href  string
	Label string
}

type Skill struct {
	Name string
	Icon string // Font Awesome class
}

type SocialLink struct {
	Href  string
	Label string
	Icon  string
}

var (
	OwnerName = "Nikhil Kanaujia"
	Headline  = "B.Tech 3rd Year Student | Frontend Developer"
	Tagline   = "Passionate about building modern and responsive web experiences."

	AboutMe = `I’m Nikhil Kanaujia, a B.Tech 3rd year student passionate about frontend development.
	My tech stack includes HTML, CSS, JavaScript, and React. I enjoy learning new technologies
	and creating clean, user-friendly interfaces.`

	ContactBlurb = `Interested in collaborating or have a question? Reach out via the form
	or connect with me on social platforms.`

	NavLinks = []NavLink{
		{Href: "#home", Label: "Home"},
		{Href: "#about", Label: "About"},
		{Href: "#skills", Label: "Skills"},
		{Href: "#contact", Label: "Contact"},
	}

	Skills = []Skill{
		{Name: "HTML", Icon: "fa-brands fa-html5"},
		{Name: "CSS", Icon: "fa-brands fa-css3-alt"},
		{Name: "JavaScript", Icon: "fa-brands fa-js"},
		{Name: "React", Icon: "fa-brands fa-react"},
	}

	SocialLinks = []SocialLink{
		{Href: "https://github.com/NikhilKanaujia", Label: "GitHub", Icon: "fa-brands fa-github"},
		{Href: "https://www.linkedin.com/in/nikhil-kanaujia/", Label: "LinkedIn", Icon: "fa-brands fa-linkedin"},
		{Href: "mailto:nikhilkanaujia.dev@gmail.com", Label: "Email", Icon: "fa-solid fa-envelope"},
	}
)
