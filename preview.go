package main

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// PreviewMarkdown renders a fragment as Markdown for a readable console preview
func PreviewMarkdown(fragment string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
