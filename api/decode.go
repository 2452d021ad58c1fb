package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/qyinm/bustui/types"
)

type movieJSON struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Img       string   `json:"img"`
	Tags      []string `json:"tags"`
	HasMagnet *bool    `json:"hasMagnet"`
}

func (m movieJSON) toMovie() types.Movie {
	return types.NewMovie(
		strings.TrimSpace(m.ID),
		strings.TrimSpace(m.Date),
		cleanText(m.Title),
		strings.TrimSpace(m.Img),
		cleanList(m.Tags),
		types.AvailabilityOf(m.HasMagnet),
	)
}

// nameField accepts either "Studio" or {"id":"x","name":"Studio"}.
type nameField string

func (n *nameField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = nameField(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*n = nameField(obj.Name)
	return nil
}

type castJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Img    string `json:"img"`
	Avatar string `json:"avatar"`
}

type sampleJSON struct {
	Src       string `json:"src"`
	Thumbnail string `json:"thumbnail"`
}

type detailJSON struct {
	movieJSON
	GID        string       `json:"gid"`
	UC         string       `json:"uc"`
	Director   nameField    `json:"director"`
	Studio     nameField    `json:"studio"`
	Producer   nameField    `json:"producer"`
	Label      nameField    `json:"label"`
	Publisher  nameField    `json:"publisher"`
	Actors     []castJSON   `json:"actors"`
	Stars      []castJSON   `json:"stars"`
	Screencaps []string     `json:"screencaps"`
	Samples    []sampleJSON `json:"samples"`
	Genre      []nameField  `json:"genre"`
	Genres     []nameField  `json:"genres"`
}

func (d detailJSON) toDetail() types.MovieDetail {
	studio := firstNonEmpty(string(d.Studio), string(d.Producer))
	label := firstNonEmpty(string(d.Label), string(d.Publisher))

	actors := d.Actors
	if len(actors) == 0 {
		actors = d.Stars
	}
	cast := make([]types.CastMember, 0, len(actors))
	for _, a := range actors {
		name := cleanText(a.Name)
		if name == "" {
			continue
		}
		cast = append(cast, types.NewCastMember(name, firstNonEmpty(a.Img, a.Avatar), strings.TrimSpace(a.ID)))
	}

	shots := trimList(d.Screencaps)
	if len(shots) == 0 {
		for _, s := range d.Samples {
			if src := firstNonEmpty(s.Src, s.Thumbnail); src != "" {
				shots = append(shots, src)
			}
		}
	}

	genreFields := d.Genres
	if len(genreFields) == 0 {
		genreFields = d.Genre
	}
	genres := make([]string, 0, len(genreFields))
	for _, g := range genreFields {
		genres = append(genres, string(g))
	}

	return types.NewMovieDetail(
		d.toMovie(),
		strings.TrimSpace(d.GID),
		strings.TrimSpace(d.UC),
		cleanText(string(d.Director)),
		cleanText(studio),
		cleanText(label),
		cast,
		shots,
		cleanList(genres),
	)
}

type magnetJSON struct {
	ID        string `json:"id"`
	Link      string `json:"link"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Size      string `json:"size"`
	Date      string `json:"date"`
	ShareDate string `json:"shareDate"`
}

func (m magnetJSON) toMagnet() types.Magnet {
	id := strings.TrimSpace(m.ID)
	if id == "" {
		id = strings.TrimSpace(m.Link)
	}
	return types.NewMagnet(
		id,
		strings.TrimSpace(m.Link),
		cleanText(firstNonEmpty(m.Name, m.Title)),
		strings.TrimSpace(m.Size),
		strings.TrimSpace(firstNonEmpty(m.Date, m.ShareDate)),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := cleanText(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
