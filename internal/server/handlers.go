package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thebestsalad/portfolio/internal/config"
	"github.com/thebestsalad/portfolio/internal/contact"
	"github.com/thebestsalad/portfolio/internal/content"
	"github.com/thebestsalad/portfolio/internal/metrics"
	"github.com/thebestsalad/portfolio/internal/router"
)

// viewKey holds the resolved view label for the tracking middleware.
const viewKey = "portfolio.view"

type navLink struct {
	Href  string
	Label string
}

var nav = []navLink{
	{"#about", "About"},
	{"#skills", "Skills"},
	{"#projects", "Projects"},
	{"#experience", "Experience"},
	{"#education", "Education"},
	{"#labs", "Labs/CTF"},
	{"#testimonials", "Testimonials"},
	{"#contact", "Contact"},
}

type pageData struct {
	Site         config.Site
	Theme        config.Theme
	Catalog      *content.Catalog
	Nav          []navLink
	View         router.View
	BackFragment string
	Contact      contactData
	Year         int
}

type contactData struct {
	Form   contact.Form
	Status contact.Status
	Errors map[string]string
	Theme  config.Theme
}

func (s *Server) page(view router.View) pageData {
	return pageData{
		Site:         s.cfg.Site,
		Theme:        s.cfg.Theme,
		Catalog:      s.catalog,
		Nav:          nav,
		View:         view,
		BackFragment: router.HomeFragment,
		Contact:      contactData{Theme: s.cfg.Theme},
		Year:         time.Now().Year(),
	}
}

func viewLabel(v router.View) string {
	if v.Kind == router.ViewProject {
		return "project:" + v.Slug
	}
	return v.Kind.String()
}

func (s *Server) markView(c *gin.Context, v router.View) {
	c.Set(viewKey, viewLabel(v))
	s.metrics.View(v.Kind.String())
}

func (s *Server) handleHome(c *gin.Context) {
	v := router.View{Kind: router.ViewHome}
	s.markView(c, v)
	c.HTML(http.StatusOK, "index.html", s.page(v))
}

// handleProjectPage serves the detail view as a full page for clients that
// do not run the fragment router.
func (s *Server) handleProjectPage(c *gin.Context) {
	v := router.Resolve(router.Route{Kind: router.RouteProject, Slug: c.Param("slug")}, s.catalog)
	s.markView(c, v)
	status := http.StatusOK
	if v.Kind == router.ViewNotFound {
		status = http.StatusNotFound
	}
	c.HTML(status, "index.html", s.page(v))
}

// handleView renders the view selected by ?fragment=, the browser's
// location hash, as a partial for #app.
func (s *Server) handleView(c *gin.Context) {
	loc := router.NewMemoryLocation(c.Query("fragment"))
	rt := router.New(loc)
	defer rt.Close()

	v := router.Resolve(rt.Route(), s.catalog)
	s.markView(c, v)

	name := "home"
	switch v.Kind {
	case router.ViewProject:
		name = "project"
	case router.ViewNotFound:
		name = "not-found"
	}
	c.HTML(http.StatusOK, name, s.page(v))
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", contactData{Theme: s.cfg.Theme})
}

func (s *Server) handleContact(c *gin.Context) {
	data := contactData{Theme: s.cfg.Theme}

	sub := contact.NewSubmitter(s.relay, s.meta, s.logger)
	sub.OnDelivered(s.metrics.Relay)
	for _, f := range contact.Fields {
		if err := sub.Update(f, c.PostForm(string(f))); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
	}
	data.Form = sub.Form()

	// Bots get the form back unchanged and nothing else.
	if data.Form.IsBot() {
		s.metrics.Submission(metrics.OutcomeRejected)
		s.logger.Debug("contact honeypot filled", "ip", c.ClientIP())
		c.HTML(http.StatusOK, "contact", data)
		return
	}

	if !s.limiter.Allow(c.ClientIP()) {
		s.metrics.Submission(metrics.OutcomeLimited)
		c.Header("Retry-After", "60")
		data.Status = contact.Status{Msg: contact.MsgFailed}
		c.HTML(http.StatusOK, "contact", data)
		return
	}

	if err := data.Form.Validate(); err != nil {
		var verrs contact.ValidationErrors
		if !errors.As(err, &verrs) {
			s.logger.Error("validating contact form", "error", err)
			data.Status = contact.Status{Msg: contact.MsgFailed}
		} else {
			data.Errors = make(map[string]string, len(verrs))
			for f, msg := range verrs {
				data.Errors[string(f)] = msg
			}
		}
		s.metrics.Submission(metrics.OutcomeInvalid)
		c.HTML(http.StatusOK, "contact", data)
		return
	}

	// A visitor leaving the page does not cancel a message already on its way.
	status, attempted := sub.Submit(context.WithoutCancel(c.Request.Context()))
	switch {
	case !attempted:
		s.metrics.Submission(metrics.OutcomeBusy)
	case status.OK:
		s.metrics.Submission(metrics.OutcomeSent)
	default:
		s.metrics.Submission(metrics.OutcomeFailed)
	}

	data.Form = sub.Form()
	data.Status = status
	c.HTML(http.StatusOK, "contact", data)
}

func (s *Server) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"Site":          s.cfg.Site,
		"RetentionDays": int(s.cfg.Visitors.Retention / (24 * time.Hour)),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.visits == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor tracking is disabled"})
		return
	}
	stats, err := s.visits.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("loading visitor stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
