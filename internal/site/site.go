// Package site materializes an index snapshot into a static site: one detail
// page per document, listing pages per collection (paginated, tag-filtered),
// a home page, an RSS feed and a sitemap. Generation is a pure function of
// the snapshot; nothing here re-parses or re-validates content.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AphilSantos/magic-portfolio/internal/config"
	"github.com/AphilSantos/magic-portfolio/internal/content"
	"github.com/AphilSantos/magic-portfolio/internal/index"
)

// SiteInfo is the site-wide template context.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
}

// DocView is a single document prepared for templates.
type DocView struct {
	Title       string
	Summary     string
	Permalink   string
	Tag         string
	PublishedAt time.Time
	Date        string
	Images      []string
	Team        []content.TeamMember
	Content     template.HTML
}

// TagLink points a listing page at one tag page.
type TagLink struct {
	Label string
	URL   string
}

type detailData struct {
	Site  SiteInfo
	Title string
	Doc   DocView
}

type listData struct {
	Site       SiteInfo
	Title      string
	Collection string
	Tag        string
	Docs       []DocView
	Tags       []TagLink
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

type homeData struct {
	Site     SiteInfo
	Title    string
	Posts    []DocView
	Projects []DocView
}

const homeRecentPosts = 5

// Generator renders one site snapshot to the output directory.
type Generator struct {
	cfg   config.Config
	site  *index.Site
	tmpl  *template.Template
	md    goldmark.Markdown
	caser cases.Caser
	log   *zap.SugaredLogger
}

// New parses the layouts and prepares a generator for the given snapshot.
// Embedded default layouts are parsed first; any .html files in the
// configured layouts directory override templates of the same name, base and
// partials before page layouts, as the override order matters for blocks.
func New(cfg config.Config, s *index.Site, log *zap.SugaredLogger) (*Generator, error) {
	tmpl, err := template.ParseFS(layoutFS, "layouts/partials/*.html", "layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse default layouts: %w", err)
	}

	if cfg.LayoutsDir != "" {
		if _, err := os.Stat(cfg.LayoutsDir); err == nil {
			tmpl, err = parseLayoutOverrides(tmpl, cfg.LayoutsDir)
			if err != nil {
				return nil, err
			}
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	return &Generator{
		cfg:   cfg,
		site:  s,
		tmpl:  tmpl,
		md:    md,
		caser: cases.Title(language.English),
		log:   log,
	}, nil
}

func parseLayoutOverrides(tmpl *template.Template, dir string) (*template.Template, error) {
	var partials, pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		if strings.HasPrefix(filepath.Dir(path), filepath.Join(dir, "partials")) {
			partials = append(partials, path)
		} else {
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find layout files in %s: %w", dir, err)
	}

	if len(partials) > 0 {
		if tmpl, err = tmpl.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("parse layout partials: %w", err)
		}
	}
	if len(pages) > 0 {
		if tmpl, err = tmpl.ParseFiles(pages...); err != nil {
			return nil, fmt.Errorf("parse page layouts: %w", err)
		}
	}
	return tmpl, nil
}

// Run cleans the output directory and writes the whole site.
func (g *Generator) Run() error {
	out := g.cfg.OutputDir
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clean output directory %s: %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", out, err)
	}

	if g.cfg.StaticDir != "" {
		if _, err := os.Stat(g.cfg.StaticDir); err == nil {
			if err := copyDirContents(g.cfg.StaticDir, out); err != nil {
				return fmt.Errorf("copy static assets: %w", err)
			}
			g.log.Debugw("static assets copied", "from", g.cfg.StaticDir)
		}
	}

	for _, c := range content.Collections {
		if err := g.renderCollection(g.site.ByCollection(c)); err != nil {
			return err
		}
	}

	if err := g.renderHome(); err != nil {
		return err
	}
	if err := g.writeFeed(); err != nil {
		return err
	}
	if err := g.writeSitemap(); err != nil {
		return err
	}

	g.log.Infow("site generated",
		"posts", g.site.Posts.Len(),
		"projects", g.site.Projects.Len(),
		"output", out,
	)
	return nil
}

func (g *Generator) renderCollection(ix *index.Index) error {
	c := ix.Collection()

	for _, doc := range ix.Documents() {
		if err := g.renderDetail(doc); err != nil {
			return err
		}
	}

	docs := ix.Documents()
	if err := g.renderListing(c, "", listingTitle(c), docs); err != nil {
		return err
	}

	if c == content.Posts {
		for _, tag := range ix.Tags() {
			title := g.tagLabel(tag)
			if err := g.renderListing(c, tag, title, ix.FilterByTag(tag)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) renderDetail(doc *content.Document) error {
	view, err := g.docView(doc, true)
	if err != nil {
		return err
	}

	layout := "single-post.html"
	if doc.Collection == content.Projects {
		layout = "single-project.html"
	}

	data := detailData{Site: g.siteInfo(), Title: doc.Title, Doc: view}
	path := filepath.Join(g.cfg.OutputDir, string(doc.Collection), doc.Slug, "index.html")
	return g.execute(layout, path, data)
}

// renderListing writes the listing pages for docs, paginated at
// PostsPerPage. The first page lands at the listing root, later pages under
// page/N/.
func (g *Generator) renderListing(c content.Collection, tag, title string, docs []*content.Document) error {
	perPage := g.cfg.PostsPerPage
	totalPages := (len(docs) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	base := "/" + string(c) + "/"
	if tag != "" {
		base = "/" + string(c) + "/tag/" + tag + "/"
	}

	var tags []TagLink
	if c == content.Posts && tag == "" {
		for _, t := range g.site.Posts.Tags() {
			tags = append(tags, TagLink{Label: g.tagLabel(t), URL: "/posts/tag/" + t + "/"})
		}
	}

	for page := 1; page <= totalPages; page++ {
		lo := (page - 1) * perPage
		hi := lo + perPage
		if hi > len(docs) {
			hi = len(docs)
		}

		views := make([]DocView, 0, hi-lo)
		for _, doc := range docs[lo:hi] {
			view, err := g.docView(doc, false)
			if err != nil {
				return err
			}
			views = append(views, view)
		}

		data := listData{
			Site:       g.siteInfo(),
			Title:      title,
			Collection: string(c),
			Tag:        tag,
			Docs:       views,
			Tags:       tags,
			Page:       page,
			TotalPages: totalPages,
			PrevURL:    pageURL(base, page-1),
			NextURL:    "",
		}
		if page < totalPages {
			data.NextURL = pageURL(base, page+1)
		}

		path := filepath.Join(g.cfg.OutputDir, pageURL(base, page), "index.html")
		if err := g.execute("list.html", path, data); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderHome() error {
	posts := g.site.Posts.Documents()
	if len(posts) > homeRecentPosts {
		posts = posts[:homeRecentPosts]
	}

	data := homeData{Site: g.siteInfo(), Title: ""}
	for _, doc := range posts {
		view, err := g.docView(doc, false)
		if err != nil {
			return err
		}
		data.Posts = append(data.Posts, view)
	}
	for _, doc := range g.site.Projects.Documents() {
		view, err := g.docView(doc, false)
		if err != nil {
			return err
		}
		data.Projects = append(data.Projects, view)
	}

	return g.execute("home.html", filepath.Join(g.cfg.OutputDir, "index.html"), data)
}

func (g *Generator) execute(layout, path string, data any) error {
	if g.tmpl.Lookup(layout) == nil {
		return fmt.Errorf("layout %q not found", layout)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := g.tmpl.ExecuteTemplate(f, layout, data); err != nil {
		return fmt.Errorf("execute layout %q for %s: %w", layout, path, err)
	}
	g.log.Debugw("page generated", "path", path, "layout", layout)
	return nil
}

// docView converts a document for templates, rendering the body only when
// the page actually embeds it.
func (g *Generator) docView(doc *content.Document, withBody bool) (DocView, error) {
	view := DocView{
		Title:       doc.Title,
		Summary:     doc.Summary,
		Permalink:   doc.Permalink(),
		Tag:         doc.Tag,
		PublishedAt: doc.PublishedAt,
		Date:        doc.PublishedAt.Format("January 2, 2006"),
		Images:      doc.Images,
		Team:        doc.Team,
	}
	if withBody {
		html, err := g.renderBody(doc)
		if err != nil {
			return DocView{}, err
		}
		view.Content = html
	}
	return view, nil
}

func (g *Generator) renderBody(doc *content.Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(doc.Body), &buf); err != nil {
		return "", fmt.Errorf("render %s/%s: %w", doc.Collection, doc.Slug, err)
	}
	return template.HTML(buf.String()), nil
}

func (g *Generator) siteInfo() SiteInfo {
	return SiteInfo{
		Title:       g.cfg.SiteTitle,
		Description: g.cfg.SiteDescription,
		Author:      g.cfg.Author,
		BaseURL:     g.cfg.BaseURL,
	}
}

func (g *Generator) tagLabel(tag string) string {
	return g.caser.String(strings.ReplaceAll(tag, "-", " "))
}

func listingTitle(c content.Collection) string {
	switch c {
	case content.Posts:
		return "Posts"
	case content.Projects:
		return "Projects"
	}
	return string(c)
}

func pageURL(base string, page int) string {
	if page < 1 {
		return ""
	}
	if page == 1 {
		return base
	}
	return fmt.Sprintf("%spage/%d/", base, page)
}
