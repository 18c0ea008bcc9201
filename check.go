package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RegionCard is a card found in the managed region of a page
type RegionCard struct {
	URL   string
	Title string
	Date  string
	Badge string
}

// InspectRegion validates the markers and lists the cards between them
func InspectRegion(doc string, m Markers) ([]RegionCard, error) {
	start, end, err := locateRegion(doc, m)
	if err != nil {
		return nil, err
	}

	region, err := goquery.NewDocumentFromReader(strings.NewReader(doc[start:end]))
	if err != nil {
		return nil, fmt.Errorf("parsing managed region: %w", err)
	}

	cards := []RegionCard{}
	region.Find("a.news-card").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		cards = append(cards, RegionCard{
			URL:   href,
			Title: strings.TrimSpace(s.Find(".news-title").First().Text()),
			Date:  strings.TrimSpace(s.Find(".news-date").First().Text()),
			Badge: strings.TrimSpace(s.Find(".news-badge").First().Text()),
		})
	})
	return cards, nil
}
