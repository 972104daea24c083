package dto

// /////////////////////
//// Catalog entries
///////////////////////

// GameSummary is a catalog entry as shown in list views.
type GameSummary struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Released        *string  `json:"released,omitempty"`
	BackgroundImage string   `json:"backgroundImage"`
	Rating          *float64 `json:"rating,omitempty"`
	Metacritic      *int     `json:"metacritic,omitempty"`
	Genres          []string `json:"genres"`
	Tags            []string `json:"tags"`
	Platforms       []string `json:"platforms"`
}

// GameDetail is the full record of a single catalog entry.
type GameDetail struct {
	GameSummary

	NameOriginal         string                 `json:"nameOriginal"`
	AlternativeNames     []string               `json:"alternativeNames"`
	Description          string                 `json:"description"`
	Website              string                 `json:"website"`
	RedditURL            string                 `json:"redditUrl"`
	MetacriticURL        string                 `json:"metacriticUrl"`
	EsrbRating           string                 `json:"esrbRating"`
	RatingTop            int                    `json:"ratingTop"`
	RatingsCount         int                    `json:"ratingsCount"`
	Playtime             int                    `json:"playtime"`
	Updated              string                 `json:"updated,omitempty"`
	Developers           []string               `json:"developers"`
	Publishers           []PublisherRef         `json:"publishers"`
	PlatformRequirements []PlatformRequirements `json:"platformRequirements"`
}

type PublisherRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlatformRequirements exists only for platforms that report requirements.
type PlatformRequirements struct {
	Name        string `json:"name"`
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

// GamePage - результат поиска: одна страница и общее количество.
type GamePage struct {
	Results []GameSummary `json:"results"`
	Count   int           `json:"count"`
}

// GameRelations tells which optional sections of a detail page have content.
type GameRelations struct {
	HasOtherGamesByPublisher bool `json:"hasOtherGamesByPublisher"`
	HasDLCs                  bool `json:"hasDlcs"`
	HasSequels               bool `json:"hasSequels"`
}

// /////////////////////
//// Reference data
///////////////////////

type Genre struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"gamesCount"`
	ImageBackground string `json:"imageBackground"`
}

type Platform struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"gamesCount"`
	ImageBackground string `json:"imageBackground"`
	YearStart       *int   `json:"yearStart,omitempty"`
	YearEnd         *int   `json:"yearEnd,omitempty"`
}

type Developer struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"gamesCount"`
	ImageBackground string `json:"imageBackground"`
}

type Publisher struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"gamesCount"`
	ImageBackground string `json:"imageBackground"`
}
