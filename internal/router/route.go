// Package router maps the location fragment to one of the page's two views:
// home, or the detail view of a single project.
package router

import (
	"regexp"

	"github.com/thebestsalad/portfolio/internal/content"
)

// HomeFragment is written by Back.
const HomeFragment = "#home"

const projectPrefix = "#/project/"

var projectPattern = regexp.MustCompile(`^#/project/(.+)$`)

type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteProject
)

func (k RouteKind) String() string {
	switch k {
	case RouteHome:
		return "home"
	case RouteProject:
		return "project"
	default:
		return "unknown"
	}
}

// Route is derived from a fragment. Slug is set only for RouteProject.
type Route struct {
	Kind RouteKind
	Slug string
}

// Parse derives the route for fragment. Anything that is not
// "#/project/<slug>" with a non-empty slug is home. The slug is taken
// literally, without decoding.
func Parse(fragment string) Route {
	m := projectPattern.FindStringSubmatch(fragment)
	if m == nil {
		return Route{Kind: RouteHome}
	}
	return Route{Kind: RouteProject, Slug: m[1]}
}

// ProjectFragment is the fragment that selects the detail view for slug.
func ProjectFragment(slug string) string {
	return projectPrefix + slug
}

type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewProject
	ViewNotFound
)

func (k ViewKind) String() string {
	switch k {
	case ViewHome:
		return "home"
	case ViewProject:
		return "project"
	case ViewNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// View is what gets rendered for a route.
type View struct {
	Kind    ViewKind
	Slug    string
	Project content.Project
}

// Catalog is the project lookup used by Resolve.
type Catalog interface {
	Project(slug string) (content.Project, bool)
}

// Resolve turns a route into a view. An unknown slug is the not-found view,
// not an error.
func Resolve(r Route, c Catalog) View {
	if r.Kind != RouteProject {
		return View{Kind: ViewHome}
	}
	p, ok := c.Project(r.Slug)
	if !ok {
		return View{Kind: ViewNotFound, Slug: r.Slug}
	}
	return View{Kind: ViewProject, Slug: r.Slug, Project: p}
}
