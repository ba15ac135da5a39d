package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const feedDescriptionLimit = 280

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeFeed emits an RSS 2.0 feed over posts. Item descriptions are derived
// from the rendered body: HTML stripped, whitespace collapsed, truncated.
func (g *Generator) writeFeed() error {
	strip := bluemonday.StrictPolicy()

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       g.cfg.SiteTitle,
			Link:        g.cfg.BaseURL + "/",
			Description: g.cfg.SiteDescription,
		},
	}

	for _, doc := range g.site.Posts.Documents() {
		html, err := g.renderBody(doc)
		if err != nil {
			return err
		}
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       doc.Title,
			Link:        g.cfg.BaseURL + doc.Permalink(),
			GUID:        g.cfg.BaseURL + doc.Permalink(),
			PubDate:     doc.PublishedAt.Format(time.RFC1123Z),
			Description: excerpt(strip.Sanitize(string(html))),
		})
	}

	return writeXML(filepath.Join(g.cfg.OutputDir, "feed.xml"), feed)
}

// writeSitemap covers the home page, every listing page and every document.
func (g *Generator) writeSitemap() error {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(loc string, lastMod time.Time) {
		u := sitemapURL{Loc: g.cfg.BaseURL + loc}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	add("/", time.Time{})
	for _, ix := range []struct {
		base string
		docs int
	}{
		{"/posts/", g.site.Posts.Len()},
		{"/projects/", g.site.Projects.Len()},
	} {
		add(ix.base, time.Time{})
		totalPages := (ix.docs + g.cfg.PostsPerPage - 1) / g.cfg.PostsPerPage
		for page := 2; page <= totalPages; page++ {
			add(pageURL(ix.base, page), time.Time{})
		}
	}
	for _, tag := range g.site.Posts.Tags() {
		add("/posts/tag/"+tag+"/", time.Time{})
	}
	for _, doc := range g.site.Posts.Documents() {
		add(doc.Permalink(), doc.PublishedAt)
	}
	for _, doc := range g.site.Projects.Documents() {
		add(doc.Permalink(), doc.PublishedAt)
	}

	return writeXML(filepath.Join(g.cfg.OutputDir, "sitemap.xml"), set)
}

func writeXML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= feedDescriptionLimit {
		return text
	}
	cut := strings.LastIndex(text[:feedDescriptionLimit], " ")
	if cut <= 0 {
		cut = feedDescriptionLimit
	}
	return text[:cut] + "…"
}
