// Package normalizer maps raw catalog API payloads into dto shapes and fills
// display defaults so callers never see empty images, ratings or links.
package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"rawg-catalog-service/api/dto"
)

const (
	PlaceholderImage = "/assets/img/game_portrait_default.jpg"
	NotRated         = "Not Rated"
	NotAvailable     = "Not available"
	NoLink           = "#"

	tagLanguage = "eng"
)

var ErrNormalizationFailed = errors.New("catalog payload normalization failed")

func decode(data []byte, what string, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNormalizationFailed, what, err)
	}
	return nil
}

// GamePage decodes a paged game list together with its total count.
func GamePage(data []byte) (dto.GamePage, error) {
	var raw rawList[rawGameSummary]
	if err := decode(data, "game list", &raw); err != nil {
		return dto.GamePage{}, err
	}
	return dto.GamePage{Results: summaries(raw.Results), Count: raw.Count}, nil
}

// GameList decodes a game list and drops the count.
func GameList(data []byte) ([]dto.GameSummary, error) {
	page, err := GamePage(data)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func GameDetail(data []byte) (dto.GameDetail, error) {
	var raw rawGameDetail
	if err := decode(data, "game detail", &raw); err != nil {
		return dto.GameDetail{}, err
	}

	description := strings.TrimSpace(raw.DescriptionRaw)
	if description == "" {
		description = raw.Description
	}
	nameOriginal := raw.NameOriginal
	if strings.TrimSpace(nameOriginal) == "" {
		nameOriginal = raw.Name
	}

	d := dto.GameDetail{
		GameSummary:          summary(raw.rawGameSummary),
		NameOriginal:         nameOriginal,
		AlternativeNames:     nonNil(raw.AlternativeNames),
		Description:          description,
		Website:              orDefault(raw.Website, NotAvailable),
		RedditURL:            orDefault(raw.RedditURL, NoLink),
		MetacriticURL:        orDefault(raw.MetacriticURL, NoLink),
		EsrbRating:           NotRated,
		RatingTop:            raw.RatingTop,
		RatingsCount:         raw.RatingsCount,
		Playtime:             raw.Playtime,
		Updated:              orDefault(raw.Updated, ""),
		Developers:           names(raw.Developers),
		Publishers:           make([]dto.PublisherRef, 0, len(raw.Publishers)),
		PlatformRequirements: requirements(raw.Platforms),
	}
	if raw.EsrbRating != nil && strings.TrimSpace(raw.EsrbRating.Name) != "" {
		d.EsrbRating = raw.EsrbRating.Name
	}
	for _, p := range raw.Publishers {
		d.Publishers = append(d.Publishers, dto.PublisherRef{ID: p.ID, Name: p.Name, Slug: slugOrDefault(p.Slug, p.Name)})
	}
	return d, nil
}

func Genres(data []byte) ([]dto.Genre, error) {
	refs, err := catalogRefs(data, "genres")
	if err != nil {
		return nil, err
	}
	out := make([]dto.Genre, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.Genre{
			ID: r.ID, Name: r.Name, Slug: slugOrDefault(r.Slug, r.Name),
			GamesCount: r.GamesCount, ImageBackground: orDefault(r.ImageBackground, PlaceholderImage),
		})
	}
	return out, nil
}

func Platforms(data []byte) ([]dto.Platform, error) {
	refs, err := catalogRefs(data, "platforms")
	if err != nil {
		return nil, err
	}
	out := make([]dto.Platform, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.Platform{
			ID: r.ID, Name: r.Name, Slug: slugOrDefault(r.Slug, r.Name),
			GamesCount: r.GamesCount, ImageBackground: orDefault(r.ImageBackground, PlaceholderImage),
			YearStart: r.YearStart, YearEnd: r.YearEnd,
		})
	}
	return out, nil
}

func Developers(data []byte) ([]dto.Developer, error) {
	refs, err := catalogRefs(data, "developers")
	if err != nil {
		return nil, err
	}
	out := make([]dto.Developer, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.Developer{
			ID: r.ID, Name: r.Name, Slug: slugOrDefault(r.Slug, r.Name),
			GamesCount: r.GamesCount, ImageBackground: orDefault(r.ImageBackground, PlaceholderImage),
		})
	}
	return out, nil
}

func Publishers(data []byte) ([]dto.Publisher, error) {
	refs, err := catalogRefs(data, "publishers")
	if err != nil {
		return nil, err
	}
	out := make([]dto.Publisher, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.Publisher{
			ID: r.ID, Name: r.Name, Slug: slugOrDefault(r.Slug, r.Name),
			GamesCount: r.GamesCount, ImageBackground: orDefault(r.ImageBackground, PlaceholderImage),
		})
	}
	return out, nil
}

// ---------------- helpers ----------------

func catalogRefs(data []byte, what string) ([]rawCatalogRef, error) {
	var raw rawList[rawCatalogRef]
	if err := decode(data, what, &raw); err != nil {
		return nil, err
	}
	return raw.Results, nil
}

func summaries(raw []rawGameSummary) []dto.GameSummary {
	out := make([]dto.GameSummary, 0, len(raw))
	for _, g := range raw {
		out = append(out, summary(g))
	}
	return out
}

func summary(g rawGameSummary) dto.GameSummary {
	s := dto.GameSummary{
		ID:              g.ID,
		Name:            g.Name,
		Slug:            slugOrDefault(g.Slug, g.Name),
		Released:        optional(g.Released),
		BackgroundImage: orDefault(g.BackgroundImage, PlaceholderImage),
		Rating:          g.Rating,
		Metacritic:      g.Metacritic,
		Genres:          names(g.Genres),
		Tags:            make([]string, 0, len(g.Tags)),
		Platforms:       make([]string, 0, len(g.Platforms)),
	}
	for _, t := range g.Tags {
		if t.Language == tagLanguage {
			s.Tags = append(s.Tags, t.Name)
		}
	}
	for _, p := range g.Platforms {
		if p.Platform.Name != "" {
			s.Platforms = append(s.Platforms, p.Platform.Name)
		}
	}
	return s
}

// requirements keeps only platforms that report a requirements object.
func requirements(platforms []rawPlatformWrapper) []dto.PlatformRequirements {
	out := make([]dto.PlatformRequirements, 0)
	for _, p := range platforms {
		if p.Requirements == nil {
			continue
		}
		out = append(out, dto.PlatformRequirements{
			Name:        p.Platform.Name,
			Minimum:     p.Requirements.Minimum,
			Recommended: p.Requirements.Recommended,
		})
	}
	return out
}

func names(items []rawNamed) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			out = append(out, it.Name)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
