// Package content holds the portfolio's static tables: projects, skills,
// experience, education, awards, labs and testimonials. Everything here is
// immutable after package init.
package content

// Project is a case study with its own detail view at #/project/<Slug>.
type Project struct {
	Slug    string
	Title   string
	Summary string
	Impact  string
	Tech    []string
	Links   Links
	Media   []string
	Badges  []string
	Details []string
}

// Links are optional; an empty string hides the link.
type Links struct {
	Repo string
	Doc  string
	Demo string
}

type Language struct {
	Name  string
	Level string
}

type SkillGroup struct {
	Name  string
	Items []string
}

type Experience struct {
	Org     string
	Role    string
	Dates   string
	Bullets []string
}

type Education struct {
	School     string
	Degree     string
	Grad       string
	GPA        string
	Highlights []string
}

type Award struct {
	Title string
	URL   string
}

type Lab struct {
	Title    string
	Platform string
	Summary  string
	Tags     []string
	Link     string
}

type Testimonial struct {
	Quote  string
	Author string
}

// Catalog groups every table rendered on the page.
type Catalog struct {
	About        string
	FocusAreas   []string
	Availability string
	Languages    []Language
	Skills       []SkillGroup
	Experience   []Experience
	Education    Education
	Awards       []Award
	Projects     []Project
	Labs         []Lab
	Testimonials []Testimonial
}

// Project looks up a project by exact slug. The first match wins.
func (c *Catalog) Project(slug string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}

// DuplicateSlugs returns every slug used by more than one project, in the
// order the second occurrence appears.
func (c *Catalog) DuplicateSlugs() []string {
	seen := make(map[string]bool, len(c.Projects))
	var dups []string
	for _, p := range c.Projects {
		if seen[p.Slug] {
			dups = append(dups, p.Slug)
			continue
		}
		seen[p.Slug] = true
	}
	return dups
}
