package normalizer

// Сырые ответы RAWG. Имена полей апстрима не выходят за пределы пакета.

type rawList[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type rawNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type rawTag struct {
	rawNamed
	Language string `json:"language"`
}

type rawRequirements struct {
	Minimum     string `json:"minimum"`
	Recommended string `json:"recommended"`
}

type rawPlatformWrapper struct {
	Platform     rawNamed         `json:"platform"`
	ReleasedAt   *string          `json:"released_at"`
	Requirements *rawRequirements `json:"requirements"`
}

type rawGameSummary struct {
	ID              int                  `json:"id"`
	Name            string               `json:"name"`
	Slug            string               `json:"slug"`
	Released        *string              `json:"released"`
	BackgroundImage *string              `json:"background_image"`
	Rating          *float64             `json:"rating"`
	RatingTop       int                  `json:"rating_top"`
	RatingsCount    int                  `json:"ratings_count"`
	Metacritic      *int                 `json:"metacritic"`
	Playtime        int                  `json:"playtime"`
	Updated         *string              `json:"updated"`
	EsrbRating      *rawNamed            `json:"esrb_rating"`
	Platforms       []rawPlatformWrapper `json:"platforms"`
	Genres          []rawNamed           `json:"genres"`
	Tags            []rawTag             `json:"tags"`
}

type rawGameDetail struct {
	rawGameSummary

	NameOriginal     string     `json:"name_original"`
	AlternativeNames []string   `json:"alternative_names"`
	Description      string     `json:"description"`
	DescriptionRaw   string     `json:"description_raw"`
	Website          *string    `json:"website"`
	RedditURL        *string    `json:"reddit_url"`
	MetacriticURL    *string    `json:"metacritic_url"`
	Developers       []rawNamed `json:"developers"`
	Publishers       []rawNamed `json:"publishers"`
}

type rawCatalogRef struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	GamesCount      int     `json:"games_count"`
	ImageBackground *string `json:"image_background"`
	YearStart       *int    `json:"year_start"`
	YearEnd         *int    `json:"year_end"`
}
