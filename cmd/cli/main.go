package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"rawg-catalog-service/api/dto"
)

// stringSlice collects repeated flag values.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(val string) error {
	*s = append(*s, val)
	return nil
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server address")
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	base := strings.TrimRight(*addr, "/")

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	var target string
	switch cmd {
	case "search":
		target = cmdSearch(base, args)
	case "detail":
		target = cmdDetail(base, args)
	case "relations":
		target = cmdRelations(base, args)
	case "popular":
		target = cmdPage(base, "popular", "/api/games/popular", args)
	case "genres", "platforms", "developers", "publishers":
		target = cmdPage(base, cmd, "/api/"+cmd, args)
	case "by-publisher":
		target = cmdByPublisher(base, args)
	case "dlcs":
		target = cmdRelated(base, "dlcs", "/api/games/additions", args)
	case "sequels":
		target = cmdRelated(base, "sequels", "/api/games/sequels", args)
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		usage()
		os.Exit(1)
	}

	get(client, target)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli [-addr url] <command> [options]")
	fmt.Fprintln(os.Stderr, "commands: search, detail, relations, popular, genres, platforms, developers, publishers, by-publisher, dlcs, sequels")
}

func cmdSearch(base string, args []string) string {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	search := fs.String("q", "", "search text")
	platform := fs.String("platform", "", "platform id")
	developer := fs.String("developer", "", "developer id or slug")
	publisher := fs.String("publisher", "", "publisher id or slug")
	genre := fs.String("genre", "", "genre id or slug")
	metacritic := fs.String("metacritic", "", "metacritic range, e.g. 80,100")
	ordering := fs.String("ordering", "", "ordering, e.g. -rating")
	page := fs.Int("page", dto.DefaultPage, "page")
	pageSize := fs.Int("page-size", dto.DefaultPageSize, "page size (1-50)")
	_ = fs.Parse(args)

	q := url.Values{}
	setIf(q, "search", *search)
	setIf(q, "platform", *platform)
	setIf(q, "developer", *developer)
	setIf(q, "publisher", *publisher)
	setIf(q, "genre", *genre)
	setIf(q, "metacritic", *metacritic)
	setIf(q, "ordering", *ordering)
	q.Set("page", strconv.Itoa(*page))
	q.Set("pageSize", strconv.Itoa(*pageSize))
	return base + "/api/games?" + q.Encode()
}

func cmdDetail(base string, args []string) string {
	fs := flag.NewFlagSet("detail", flag.ExitOnError)
	id := fs.Int("id", 0, "game id")
	_ = fs.Parse(args)
	if *id <= 0 {
		fs.Usage()
		os.Exit(1)
	}
	return fmt.Sprintf("%s/api/games/%d", base, *id)
}

func cmdRelations(base string, args []string) string {
	fs := flag.NewFlagSet("relations", flag.ExitOnError)
	id := fs.Int("id", 0, "game id")
	var publishers stringSlice
	fs.Var(&publishers, "publisher", "publisher id (repeatable)")
	_ = fs.Parse(args)
	if *id <= 0 {
		fs.Usage()
		os.Exit(1)
	}
	q := url.Values{}
	setIf(q, "publisherIds", publishers.String())
	return fmt.Sprintf("%s/api/games/%d/relations?%s", base, *id, q.Encode())
}

func cmdPage(base, name, path string, args []string) string {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	page := fs.Int("page", dto.DefaultPage, "page")
	pageSize := fs.Int("page-size", dto.DefaultPageSize, "page size (1-50)")
	_ = fs.Parse(args)

	q := url.Values{}
	q.Set("page", strconv.Itoa(*page))
	q.Set("pageSize", strconv.Itoa(*pageSize))
	return base + path + "?" + q.Encode()
}

func cmdByPublisher(base string, args []string) string {
	fs := flag.NewFlagSet("by-publisher", flag.ExitOnError)
	var publishers stringSlice
	fs.Var(&publishers, "publisher", "publisher id (repeatable)")
	exclude := fs.Int("exclude", 0, "game id to leave out")
	_ = fs.Parse(args)
	if len(publishers) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	q := url.Values{}
	q.Set("publisherIds", publishers.String())
	if *exclude > 0 {
		q.Set("excludeId", strconv.Itoa(*exclude))
	}
	return base + "/api/games/publisher?" + q.Encode()
}

func cmdRelated(base, name, path string, args []string) string {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.Int("id", 0, "game id")
	_ = fs.Parse(args)
	if *id <= 0 {
		fs.Usage()
		os.Exit(1)
	}
	return fmt.Sprintf("%s%s?gameId=%d", base, path, *id)
}

func setIf(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}

func get(client *http.Client, u string) {
	resp, err := client.Get(u)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		fmt.Fprintln(os.Stderr, resp.Status, strings.TrimSpace(string(msg)))
		os.Exit(1)
	}
	_, _ = io.Copy(os.Stdout, resp.Body)
}
