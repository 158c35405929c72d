// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo renders the machine-readable views of the public blog: the
// RSS feed, the sitemap and robots.txt.
package seo

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/oblog-go/internal/model"
)

// FeedLimit is the number of newest posts included in the feed.
const FeedLimit = 20

// htmlSanitizer strips anything beyond safe user-generated markup from
// rendered post content.
var htmlSanitizer = bluemonday.UGCPolicy()

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RSS is the root element of an RSS 2.0 document.
type RSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RSSChannel `xml:"channel"`
}

// RSSChannel describes the feed.
type RSSChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []RSSItem `xml:"item"`
}

// RSSItem is one post in the feed.
type RSSItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        RSSGUID       `xml:"guid"`
	PubDate     string        `xml:"pubDate"`
	Description string        `xml:"description"`
	Categories  []string      `xml:"category"`
	Enclosure   *RSSEnclosure `xml:"enclosure,omitempty"`
}

// RSSGUID identifies an item.
type RSSGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// RSSEnclosure attaches the post image.
type RSSEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// FeedBuilder builds an RSS 2.0 feed of published posts.
type FeedBuilder struct {
	siteURL     string
	title       string
	description string
	items       []RSSItem
	newest      time.Time
}

// NewFeedBuilder creates a feed builder for the site at siteURL.
func NewFeedBuilder(siteURL, title, description string) *FeedBuilder {
	return &FeedBuilder{
		siteURL:     strings.TrimSuffix(siteURL, "/"),
		title:       title,
		description: description,
	}
}

// AddPost appends a post. Posts are expected newest first; the feed stops
// growing at FeedLimit items.
func (b *FeedBuilder) AddPost(p model.PublicPost) error {
	if len(b.items) >= FeedLimit {
		return nil
	}

	body, err := RenderMarkdown(p.Content)
	if err != nil {
		return err
	}

	link := PostURL(b.siteURL, p.Slug)
	item := RSSItem{
		Title:       p.Title,
		Link:        link,
		GUID:        RSSGUID{Value: link, IsPermaLink: true},
		PubDate:     p.CreatedAt.UTC().Format(time.RFC1123Z),
		Description: body,
		Categories:  p.Tags,
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		item.Enclosure = &RSSEnclosure{
			URL:  makeAbsoluteURL(*p.ImageURL, b.siteURL),
			Type: imageTypeFromURL(*p.ImageURL),
		}
	}

	b.items = append(b.items, item)
	if p.CreatedAt.After(b.newest) {
		b.newest = p.CreatedAt
	}
	return nil
}

// Build generates the feed XML.
func (b *FeedBuilder) Build() ([]byte, error) {
	rss := RSS{
		Version: "2.0",
		Channel: RSSChannel{
			Title:       b.title,
			Link:        b.siteURL + "/",
			Description: b.description,
			Items:       b.items,
		},
	}
	if !b.newest.IsZero() {
		rss.Channel.LastBuildDate = b.newest.UTC().Format(time.RFC1123Z)
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// RenderMarkdown converts post content to sanitized HTML.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// PostURL returns the public URL of the post with the given slug.
func PostURL(siteURL, slug string) string {
	return strings.TrimSuffix(siteURL, "/") + "/posts/" + slug
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}

func imageTypeFromURL(url string) string {
	switch {
	case strings.HasSuffix(url, ".png"):
		return model.MimeTypePNG
	case strings.HasSuffix(url, ".gif"):
		return model.MimeTypeGIF
	case strings.HasSuffix(url, ".webp"):
		return model.MimeTypeWebP
	default:
		return model.MimeTypeJPEG
	}
}
