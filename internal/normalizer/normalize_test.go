package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamePage_DefaultsAndGenres(t *testing.T) {
	data := []byte(`{
		"count": 2,
		"results": [
			{"id": 1, "name": "Game One", "background_image": "https://x/1.jpg", "genres": [{"name": "Action"}]},
			{"id": 2, "name": "Game Two", "background_image": "", "genres": [{"name": "RPG"}]}
		]
	}`)

	page, err := GamePage(data)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)

	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "https://x/1.jpg", page.Results[0].BackgroundImage)
	assert.Equal(t, PlaceholderImage, page.Results[1].BackgroundImage)
	assert.Equal(t, []string{"Action"}, page.Results[0].Genres)
	assert.Equal(t, []string{"RPG"}, page.Results[1].Genres)
	assert.Equal(t, "game-one", page.Results[0].Slug)
}

func TestGamePage_NullCollectionsBecomeEmpty(t *testing.T) {
	page, err := GamePage([]byte(`{"count": 1, "results": [{"id": 7, "name": "X", "genres": null, "tags": null, "platforms": null}]}`))
	require.NoError(t, err)

	g := page.Results[0]
	assert.NotNil(t, g.Genres)
	assert.NotNil(t, g.Tags)
	assert.NotNil(t, g.Platforms)
	assert.Empty(t, g.Genres)
	assert.Nil(t, g.Released)
	assert.Nil(t, g.Rating)
}

func TestGamePage_EmptyResults(t *testing.T) {
	page, err := GamePage([]byte(`{"count": 0, "results": null}`))
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestGamePage_TagsFilteredToEnglish(t *testing.T) {
	page, err := GamePage([]byte(`{"results": [{"id": 1, "name": "G", "tags": [
		{"name": "Singleplayer", "language": "eng"},
		{"name": "Одиночная игра", "language": "rus"},
		{"name": "Atmospheric", "language": "eng"}
	], "platforms": [{"platform": {"id": 4, "name": "PC"}}]}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Singleplayer", "Atmospheric"}, page.Results[0].Tags)
	assert.Equal(t, []string{"PC"}, page.Results[0].Platforms)
}

func TestGamePage_MalformedJSON(t *testing.T) {
	_, err := GamePage([]byte(`{"results": [`))
	assert.ErrorIs(t, err, ErrNormalizationFailed)

	_, err = GameList([]byte(`not json`))
	assert.ErrorIs(t, err, ErrNormalizationFailed)
}

func TestGameDetail_Defaults(t *testing.T) {
	d, err := GameDetail([]byte(`{
		"id": 3498,
		"name": "Grand Theft Auto V",
		"slug": "",
		"description": "<p>Rockstar</p>",
		"description_raw": "",
		"website": null,
		"esrb_rating": null,
		"released": "2013-09-17",
		"rating": 4.47,
		"metacritic": 92
	}`))
	require.NoError(t, err)

	assert.Equal(t, "grand-theft-auto-v", d.Slug)
	assert.Equal(t, "<p>Rockstar</p>", d.Description)
	assert.Equal(t, NotAvailable, d.Website)
	assert.Equal(t, NotRated, d.EsrbRating)
	assert.Equal(t, NoLink, d.RedditURL)
	assert.Equal(t, NoLink, d.MetacriticURL)
	assert.Equal(t, PlaceholderImage, d.BackgroundImage)
	assert.Equal(t, "Grand Theft Auto V", d.NameOriginal)
	require.NotNil(t, d.Released)
	assert.Equal(t, "2013-09-17", *d.Released)
	require.NotNil(t, d.Metacritic)
	assert.Equal(t, 92, *d.Metacritic)
	assert.NotNil(t, d.Developers)
	assert.NotNil(t, d.Publishers)
	assert.NotNil(t, d.AlternativeNames)
	assert.NotNil(t, d.PlatformRequirements)
}

func TestGameDetail_Fields(t *testing.T) {
	d, err := GameDetail([]byte(`{
		"id": 1,
		"name": "Portal 2",
		"name_original": "Portal 2",
		"description": "<p>html</p>",
		"description_raw": "plain",
		"website": "http://www.thinkwithportals.com/",
		"reddit_url": "https://www.reddit.com/r/Portal/",
		"esrb_rating": {"id": 2, "name": "Everyone 10+", "slug": "everyone-10-plus"},
		"developers": [{"id": 1, "name": "Valve Software"}],
		"publishers": [{"id": 2, "name": "Electronic Arts", "slug": ""}],
		"platforms": [
			{"platform": {"id": 4, "name": "PC"}, "requirements": {"minimum": "2GB RAM", "recommended": "4GB RAM"}},
			{"platform": {"id": 18, "name": "PlayStation 4"}, "requirements": null},
			{"platform": {"id": 1, "name": "Xbox One"}}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "plain", d.Description)
	assert.Equal(t, "http://www.thinkwithportals.com/", d.Website)
	assert.Equal(t, "https://www.reddit.com/r/Portal/", d.RedditURL)
	assert.Equal(t, "Everyone 10+", d.EsrbRating)
	assert.Equal(t, []string{"Valve Software"}, d.Developers)
	require.Len(t, d.Publishers, 1)
	assert.Equal(t, "electronic-arts", d.Publishers[0].Slug)
	require.Len(t, d.PlatformRequirements, 1)
	assert.Equal(t, "PC", d.PlatformRequirements[0].Name)
	assert.Equal(t, "2GB RAM", d.PlatformRequirements[0].Minimum)
	assert.Equal(t, []string{"PC", "PlayStation 4", "Xbox One"}, d.Platforms)
}

func TestGameDetail_Idempotent(t *testing.T) {
	first, err := GameDetail([]byte(`{"id": 5, "name": "Idem"}`))
	require.NoError(t, err)

	second, err := GameDetail([]byte(`{
		"id": 5, "name": "Idem", "slug": "` + first.Slug + `",
		"background_image": "` + first.BackgroundImage + `",
		"website": "` + first.Website + `",
		"reddit_url": "` + first.RedditURL + `",
		"metacritic_url": "` + first.MetacriticURL + `",
		"esrb_rating": {"name": "` + first.EsrbRating + `"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReferenceLists(t *testing.T) {
	data := []byte(`{"count": 2, "results": [
		{"id": 4, "name": "PC", "slug": "pc", "games_count": 500000, "image_background": "https://x/pc.jpg", "year_start": null, "year_end": null},
		{"id": 187, "name": "PlayStation 5", "games_count": 900, "image_background": null, "year_start": 2020}
	]}`)

	platforms, err := Platforms(data)
	require.NoError(t, err)
	require.Len(t, platforms, 2)
	assert.Equal(t, "pc", platforms[0].Slug)
	assert.Equal(t, "playstation-5", platforms[1].Slug)
	assert.Equal(t, PlaceholderImage, platforms[1].ImageBackground)
	require.NotNil(t, platforms[1].YearStart)
	assert.Equal(t, 2020, *platforms[1].YearStart)

	genres, err := Genres(data)
	require.NoError(t, err)
	assert.Equal(t, 500000, genres[0].GamesCount)

	devs, err := Developers(data)
	require.NoError(t, err)
	assert.Len(t, devs, 2)

	pubs, err := Publishers(data)
	require.NoError(t, err)
	assert.Equal(t, "https://x/pc.jpg", pubs[0].ImageBackground)

	_, err = Publishers([]byte(`[`))
	assert.ErrorIs(t, err, ErrNormalizationFailed)
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "the-witcher-3", Kebab("  The   Witcher\t3 "))
	assert.Equal(t, "", Kebab("   "))
	assert.Equal(t, Kebab("half-life"), Kebab(Kebab("half-life")))
}
