// Package main provides a tool to seed a development database with users,
// catalog media and list entries.
//
// It reads the same configuration as the server, so the data lands in the
// database the server opens.
//
// Usage:
//
//	DATA_PATH=~/mylists go run ./cmd/seed
//	DATA_PATH=~/mylists go run ./cmd/seed -users 8 -password devpass123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/mylists/mylists-server/internal/auth"
	"github.com/mylists/mylists-server/internal/config"
	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/id"
	"github.com/mylists/mylists-server/internal/logger"
	"github.com/mylists/mylists-server/internal/store"
	"github.com/mylists/mylists-server/internal/store/sqlite"
)

var (
	numUsers = flag.Int("users", 5, "Number of regular users to create")
	password = flag.String("password", "password123", "Password of every seeded account")
	seed     = flag.Uint64("seed", 1, "Random seed; the same seed gives the same lists")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	s, err := sqlite.Open(cfg.Data.DatabasePath(), log.Logger)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Data.DatabasePath(), "error", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := run(context.Background(), s, log); err != nil {
		log.WithError(err).Error("Seeding failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, s *sqlite.Store, log *logger.Logger) error {
	rng := rand.New(rand.NewPCG(*seed, *seed))

	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := make([]*domain.User, 0, *numUsers+1)
	admin, err := ensureUser(ctx, s, domain.AdminUsername, domain.RoleAdmin, passwordHash)
	if err != nil {
		return err
	}
	users = append(users, admin)
	for n := 1; n <= *numUsers; n++ {
		u, err := ensureUser(ctx, s, fmt.Sprintf("user%d", n), domain.RoleUser, passwordHash)
		if err != nil {
			return err
		}
		// Every other user rates with feelings.
		if n%2 == 0 && !u.AddFeeling {
			u.AddFeeling = true
			u.Touch()
			if err := s.UpdateUser(ctx, u); err != nil {
				return fmt.Errorf("update user %s: %w", u.Username, err)
			}
		}
		users = append(users, u)
	}
	log.Info("Users ready", "count", len(users))

	media := seedCatalog()
	catalog := make(map[domain.MediaType][]*domain.Media, len(domain.MediaTypes))
	for _, m := range media {
		if err := s.CreateMedia(ctx, m); err != nil {
			return fmt.Errorf("create media %q: %w", m.Name, err)
		}
		catalog[m.Type] = append(catalog[m.Type], m)
	}
	log.Info("Catalog created", "media", len(media))

	for _, u := range users[1:] {
		entries := 0
		for _, mt := range domain.MediaTypes {
			n, err := seedList(ctx, s, rng, u, mt, catalog[mt])
			if err != nil {
				return err
			}
			log.WithList(u.ID, string(mt)).Debug("List seeded", "entries", n)
			entries += n
		}
		log.WithUser(u.ID).Info("Lists seeded", "username", u.Username, "entries", entries)
	}

	// A follow graph so profiles have something to show.
	for i, u := range users[1:] {
		target := users[1+(i+1)%(len(users)-1)]
		if target.ID == u.ID {
			continue
		}
		if err := s.Follow(ctx, u.ID, target.ID); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("follow: %w", err)
		}
	}

	log.Info("Seeding complete", "password", *password)
	return nil
}

// ensureUser returns the account called username, creating it if needed.
func ensureUser(ctx context.Context, s *sqlite.Store, username string, role domain.Role, passwordHash string) (*domain.User, error) {
	u, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}

	u = &domain.User{
		Entity:       domain.Entity{ID: id.MustGenerate(id.PrefixUser)},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		Role:         role,
	}
	u.InitTimestamps()
	u.LastSeen = u.CreatedAt

	if err := s.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return u, nil
}

// seedList adds a random subset of media to one list of u, with random
// statuses, ratings, favorites, progress and labels.
func seedList(ctx context.Context, s *sqlite.Store, rng *rand.Rand, u *domain.User, mt domain.MediaType, media []*domain.Media) (int, error) {
	statuses := mt.Statuses()
	labels := []string{"Rewatch", "Recommended", "With friends"}
	now := time.Now().UTC()
	added := 0

	for _, m := range media {
		if rng.IntN(4) == 0 {
			continue
		}

		e := domain.NewListEntry(u.ID, m, statuses[rng.IntN(len(statuses))], now.Add(-time.Duration(rng.IntN(720))*time.Hour))
		e.Favorite = rng.IntN(5) == 0
		if !e.Status.IsPlanned() && rng.IntN(3) > 0 {
			var v float64
			if u.AddFeeling {
				v = float64(rng.IntN(6))
			} else {
				v = float64(rng.IntN(21)) / 2
			}
			if err := e.SetMetric(u.AddFeeling, &v); err != nil {
				return added, fmt.Errorf("%s %q: %w", mt, m.Name, err)
			}
		}
		if e.Status == domain.StatusCompleted && rng.IntN(4) == 0 {
			// Some media types do not support rewatching.
			_ = e.SetRedo(m, 1+rng.IntN(2))
		}
		if rng.IntN(6) == 0 {
			e.SetComment(fmt.Sprintf("Seeded note on %s", strings.ToLower(m.Name)))
		}

		if err := s.CreateListEntry(ctx, e); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return added, fmt.Errorf("add %s %q: %w", mt, m.Name, err)
		}
		added++

		if rng.IntN(3) == 0 {
			label := labels[rng.IntN(len(labels))]
			if err := s.AddLabel(ctx, mt, u.ID, m.ID, label); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
				return added, fmt.Errorf("label %s %q: %w", mt, m.Name, err)
			}
		}
	}
	return added, nil
}

// seedCatalog returns a small catalog covering every media type, with the
// tags the list search looks at.
func seedCatalog() []*domain.Media {
	now := time.Now().UTC()
	return []*domain.Media{
		{Type: domain.MediaSeries, Name: "Dark", OriginalName: "Dark", ReleaseDate: "2017-12-01", VoteAverage: 8.4, Popularity: 120,
			Duration: 55, CreatedBy: "Baran bo Odar", TotalSeasons: 3, TotalEpisodes: 26, EpsPerSeason: []int{10, 8, 8},
			Networks: []string{"Netflix"}, Actors: []string{"Louis Hofmann", "Lisa Vicari"}, Genres: []string{"Drama", "Mystery", "Sci-Fi & Fantasy"}, LastUpdate: now},
		{Type: domain.MediaSeries, Name: "The Wire", ReleaseDate: "2002-06-02", VoteAverage: 8.6, Popularity: 90,
			Duration: 60, CreatedBy: "David Simon", TotalSeasons: 5, TotalEpisodes: 60, EpsPerSeason: []int{13, 12, 12, 13, 10},
			Networks: []string{"HBO"}, Actors: []string{"Dominic West", "Idris Elba"}, Genres: []string{"Crime", "Drama"}, LastUpdate: now},
		{Type: domain.MediaSeries, Name: "Bluey", ReleaseDate: "2018-10-01", VoteAverage: 8.7, Popularity: 80,
			Duration: 7, TotalSeasons: 3, TotalEpisodes: 154, EpsPerSeason: []int{52, 52, 50},
			Networks: []string{"ABC Kids"}, Genres: []string{"Animation", "Kids", "Family"}, LastUpdate: now},
		{Type: domain.MediaAnime, Name: "Mushishi", OriginalName: "蟲師", ReleaseDate: "2005-10-23", VoteAverage: 8.6, Popularity: 40,
			Duration: 25, TotalSeasons: 2, TotalEpisodes: 46, EpsPerSeason: []int{26, 20},
			Networks: []string{"Fuji TV"}, Genres: []string{"Mystery", "Slice Of Life", "Supernatural"}, LastUpdate: now},
		{Type: domain.MediaAnime, Name: "Cowboy Bebop", OriginalName: "カウボーイビバップ", ReleaseDate: "1998-04-03", VoteAverage: 8.8, Popularity: 150,
			Duration: 24, TotalSeasons: 1, TotalEpisodes: 26, EpsPerSeason: []int{26},
			Networks: []string{"TV Tokyo"}, Actors: []string{"Kōichi Yamadera"}, Genres: []string{"Action", "Space", "Sci-Fi"}, LastUpdate: now},
		{Type: domain.MediaMovies, Name: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9, Popularity: 70, Duration: 170,
			DirectorName: "Michael Mann", OriginalLanguage: "en", Actors: []string{"Al Pacino", "Robert De Niro"},
			Genres: []string{"Action", "Crime", "Thriller"}, LastUpdate: now},
		{Type: domain.MediaMovies, Name: "Amélie", OriginalName: "Le Fabuleux Destin d'Amélie Poulain", ReleaseDate: "2001-04-25",
			VoteAverage: 7.9, Popularity: 60, Duration: 122, DirectorName: "Jean-Pierre Jeunet", OriginalLanguage: "fr",
			Actors: []string{"Audrey Tautou"}, Genres: []string{"Comedy", "Romance"}, LastUpdate: now},
		{Type: domain.MediaMovies, Name: "Spirited Away", OriginalName: "千と千尋の神隠し", ReleaseDate: "2001-07-20",
			VoteAverage: 8.5, Popularity: 110, Duration: 125, DirectorName: "Hayao Miyazaki", OriginalLanguage: "ja",
			Genres: []string{"Animation", "Family", "Fantasy"}, LastUpdate: now},
		{Type: domain.MediaGames, Name: "Outer Wilds", ReleaseDate: "2019-05-28", VoteAverage: 8.9, Popularity: 50,
			Companies: []string{"Mobius Digital", "Annapurna Interactive"}, Platforms: []string{"PC (Microsoft Windows)", "PlayStation 4"},
			Genres: []string{"Adventure", "Puzzle", "Indie"}, LastUpdate: now},
		{Type: domain.MediaGames, Name: "Celeste", ReleaseDate: "2018-01-25", VoteAverage: 8.7, Popularity: 45,
			Companies: []string{"Maddy Makes Games"}, Platforms: []string{"PC (Microsoft Windows)", "Nintendo Switch"},
			Genres: []string{"Platform", "Indie"}, LastUpdate: now},
		{Type: domain.MediaBooks, Name: "Dune", ReleaseDate: "1965-08-01", VoteAverage: 8.3, Popularity: 95, Pages: 412,
			Authors: []string{"Frank Herbert"}, Genres: []string{"Science Fiction", "Classic"}, LastUpdate: now},
		{Type: domain.MediaBooks, Name: "Le Petit Prince", ReleaseDate: "1943-04-06", VoteAverage: 8.1, Popularity: 75, Pages: 96,
			Authors: []string{"Antoine de Saint-Exupéry"}, Genres: []string{"Children", "Classic", "Philosophy"}, LastUpdate: now},
	}
}
