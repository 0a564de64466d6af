package tmdb

import "github.com/mmcdole/marquee/internal/domain"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapMovie(m movieDTO) domain.Movie {
	return domain.Movie{
		ID:           m.ID,
		Title:        m.Title,
		Name:         m.Name,
		Overview:     m.Overview,
		PosterPath:   deref(m.PosterPath),
		BackdropPath: deref(m.BackdropPath),
		VoteAverage:  m.VoteAverage,
	}
}

func mapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, m := range dtos {
		movies = append(movies, mapMovie(m))
	}
	return movies
}

func mapPage(resp pagedResponse) domain.Page {
	return domain.Page{
		Number:       resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Movies:       mapMovies(resp.Results),
	}
}

func mapMovieDetail(d movieDetailDTO) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		Movie:       mapMovie(d.movieDTO),
		ReleaseDate: d.ReleaseDate,
		Adult:       d.Adult,
	}

	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	if d.Videos != nil {
		for _, v := range d.Videos.Results {
			detail.Videos = append(detail.Videos, domain.Video{
				ID:   v.ID,
				Key:  v.Key,
				Name: v.Name,
				Site: v.Site,
				Type: v.Type,
			})
		}
	}

	if d.Credits != nil {
		for _, c := range d.Credits.Cast {
			detail.Cast = append(detail.Cast, domain.CastMember{
				ID:          c.ID,
				Name:        c.Name,
				Character:   c.Character,
				ProfilePath: deref(c.ProfilePath),
			})
		}
	}

	return detail
}
