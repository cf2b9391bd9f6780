package domain

// GenreAll disables genre filtering. It is the first entry of every genre list.
const GenreAll = "All"

// LangAll disables language filtering.
const LangAll = "All"

var genresByType = map[MediaType][]string{
	MediaSeries: {
		"All", "Action & Adventure", "Animation", "Comedy", "Crime", "Documentary", "Drama", "Family",
		"Kids", "Mystery", "News", "Reality", "Sci-Fi & Fantasy", "Soap", "Talk", "War & Politics",
		"Western",
	},
	MediaAnime: {
		"All", "Action", "Adventure", "Cars", "Comedy", "Dementia", "Demons", "Mystery", "Drama",
		"Ecchi", "Fantasy", "Game", "Hentai", "Historical", "Horror", "Magic", "Martial Arts", "Mecha",
		"Music", "Samurai", "Romance", "School", "Sci-Fi", "Shoujo", "Shonen", "Space", "Sports",
		"Super Power", "Vampire", "Harem", "Slice Of Life", "Supernatural", "Military", "Police",
		"Psychological", "Thriller", "Seinen", "Josei",
	},
	MediaMovies: {
		"All", "Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary", "Drama", "Family",
		"Fantasy", "History", "Horror", "Music", "Mystery", "Romance", "Science Fiction", "TV Movie",
		"Thriller", "War", "Western",
	},
	MediaGames: {
		"All", "4X", "Adventure", "Arcade", "Card & Board Game", "Fighting", "Hack and Slash",
		"Indie", "Music", "Platform", "Point-and-Click", "Puzzle", "Quiz/Trivia", "Racing",
		"Real Time Strategy", "Role-playing (RPG)", "Shooter", "Simulator", "Sport", "Strategy",
		"Tactical", "Turn-based strategy (TBS)", "Visual Novel",
	},
	MediaBooks: {
		"All", "Action & Adventure", "Biography", "Children", "Classic", "Comic", "Crime", "Drama",
		"Fantastic", "Fantasy", "Historical", "Horror", "Humor", "Mystery", "Philosophy", "Poetry",
		"Politics", "Romance", "Science", "Science Fiction", "Self Help", "Thriller", "Travel",
		"Young Adult",
	},
}

// Genres returns the genre filter vocabulary of a media type, starting with All.
func (mt MediaType) Genres() []string {
	src := genresByType[mt]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
