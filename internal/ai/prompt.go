// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TagCount is the number of SEO tags the editor is asked for.
const TagCount = 5

const systemPrompt = `You are a professional blog editor.

From the content the user sends:
1. Generate a catchy blog title
2. Write a short intro paragraph
3. Generate exactly 5 SEO tags
4. Generate a short blog outline

Respond ONLY with a valid JSON object (no markdown code fences, no extra text) with exactly these fields:

{
  "title": "",
  "intro": "",
  "tags": [],
  "outline": ""
}`

func buildUserPrompt(text string) string {
	return "Content:\n" + text
}

// ParseSuggestion decodes a model reply. Markdown code fences around the
// JSON are tolerated. Every field must be present and non-null; unknown
// fields, trailing data, a blank title or non-string tags are rejected.
func ParseSuggestion(raw string) (Suggestion, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return Suggestion{}, fmt.Errorf("%w: empty reply", ErrUnavailable)
	}

	var reply struct {
		Title   *string      `json:"title"`
		Intro   *string      `json:"intro"`
		Tags    *[]string    `json:"tags"`
		Outline *outlineText `json:"outline"`
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reply); err != nil {
		return Suggestion{}, fmt.Errorf("%w: decoding reply: %w", ErrUnavailable, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Suggestion{}, fmt.Errorf("%w: trailing data after JSON object", ErrUnavailable)
	}

	switch {
	case reply.Title == nil:
		return Suggestion{}, fmt.Errorf("%w: reply has no title", ErrUnavailable)
	case reply.Intro == nil:
		return Suggestion{}, fmt.Errorf("%w: reply has no intro", ErrUnavailable)
	case reply.Tags == nil:
		return Suggestion{}, fmt.Errorf("%w: reply has no tags", ErrUnavailable)
	case reply.Outline == nil:
		return Suggestion{}, fmt.Errorf("%w: reply has no outline", ErrUnavailable)
	}

	title := strings.TrimSpace(*reply.Title)
	if title == "" {
		return Suggestion{}, fmt.Errorf("%w: reply has a blank title", ErrUnavailable)
	}

	tags := make([]string, 0, len(*reply.Tags))
	for _, t := range *reply.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return Suggestion{
		Title:   title,
		Intro:   strings.TrimSpace(*reply.Intro),
		Outline: strings.TrimSpace(string(*reply.Outline)),
		Tags:    tags,
	}, nil
}

// stripCodeFences removes a surrounding ``` or ```json fence.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// outlineText accepts the outline either as a string or as a list of lines.
type outlineText string

func (o *outlineText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var lines []string
		if err := json.Unmarshal(b, &lines); err != nil {
			return fmt.Errorf("outline: %w", err)
		}
		*o = outlineText(strings.Join(lines, "\n"))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	*o = outlineText(s)
	return nil
}
