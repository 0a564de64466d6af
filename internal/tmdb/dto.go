package tmdb

// pagedResponse is the envelope of list endpoints
type pagedResponse struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []movieDTO `json:"results"`
}

type movieDTO struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"` // null when missing
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type videoDTO struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type castDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type movieDetailDTO struct {
	movieDTO
	ReleaseDate string     `json:"release_date"`
	Genres      []genreDTO `json:"genres"`
	Adult       bool       `json:"adult"`
	Videos      *struct {
		Results []videoDTO `json:"results"`
	} `json:"videos"`
	Credits *struct {
		Cast []castDTO `json:"cast"`
	} `json:"credits"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
