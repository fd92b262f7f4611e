package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 4096

const markdownTemplate = "![%s](%s)\n" +
	"```\n" +
	"Name:   %s\n" +
	"Types:  %s\n" +
	"Height: %d decimeters\n" +
	"Weight: %d hectograms\n" +
	"```\n"

// Type struct
type Type struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot struct
type TypeSlot struct {
	Slot int  `json:"slot"`
	Type Type `json:"type"`
}

// Sprites struct
type Sprites struct {
	FrontDefault     *string `json:"front_default"`
	FrontShiny       *string `json:"front_shiny"`
	FrontFemale      *string `json:"front_female"`
	FrontShinyFemale *string `json:"front_shiny_female"`
	BackDefault      *string `json:"back_default"`
	BackShiny        *string `json:"back_shiny"`
	BackFemale       *string `json:"back_female"`
	BackShinyFemale  *string `json:"back_shiny_female"`
}

// Pokemon struct
type Pokemon struct {
	Name    string     `json:"name"`
	Sprites Sprites    `json:"sprites"`
	Types   []TypeSlot `json:"types"`
	Height  uint64     `json:"height"`
	Weight  uint64     `json:"weight"`
}

// First returns the first sprite URL that is set
func (s Sprites) First() (string, bool) {
	for _, sprite := range []*string{
		s.FrontDefault,
		s.FrontShiny,
		s.FrontFemale,
		s.FrontShinyFemale,
		s.BackDefault,
		s.BackShiny,
		s.BackFemale,
		s.BackShinyFemale,
	} {
		if sprite != nil && *sprite != "" {
			return *sprite, true
		}
	}

	return "", false
}

// TypeNames joins the type names in the order they were received
func (p *Pokemon) TypeNames() string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}

	return strings.Join(names, ", ")
}

// Image returns the first sprite, or placeholder when there is none
func (p *Pokemon) Image(placeholder string) string {
	if sprite, ok := p.Sprites.First(); ok {
		return sprite
	}

	if placeholder == "" {
		return configs.DefaultPlaceholderImage
	}

	return placeholder
}

// Markdown renders the pokedex entry shown in Discord
func (p *Pokemon) Markdown(placeholder string) string {
	return fmt.Sprintf(markdownTemplate,
		p.Name,
		p.Image(placeholder),
		p.Name,
		p.TypeNames(),
		p.Height,
		p.Weight,
	)
}

// GetPokemon fetches a pokemon by name or id
func (pa *PokeAPI) GetPokemon(ctx context.Context, name string) (*Pokemon, *Error) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("pokemon", name),
	)

	endpoint := pa.BaseURL + "/pokemon/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{
			Message: "Failed to build PokeAPI request",
			Err:     fmt.Errorf("%w: %s", ErrRequest, err.Error()),
		}
	}
	req.Header.Set("Accept", "application/json")

	client := pa.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			Message: "Failed to reach PokeAPI",
			Err:     fmt.Errorf("%w: %s", ErrRequest, err.Error()),
		}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &Error{
			Message: fmt.Sprintf("PokeAPI error: %d %s", res.StatusCode, strings.TrimSpace(string(body))),
			Err:     ErrUpstream,
			Status:  res.StatusCode,
			Body:    string(body),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{
			Message: "Failed to read PokeAPI response",
			Err:     fmt.Errorf("%w: %s", ErrRequest, err.Error()),
			Status:  res.StatusCode,
		}
	}

	pokemon, err := decodePokemon(body)
	if err != nil {
		return nil, &Error{
			Message: "Failed to decode PokeAPI response",
			Err:     fmt.Errorf("%w: %s", ErrDecode, err.Error()),
			Status:  res.StatusCode,
		}
	}

	logger := logging.Logger(ctx)
	logger.Debug("pokeapi_log", zap.String("name", pokemon.Name))

	return pokemon, nil
}

// requiredFields must be present and non-null in a pokemon record
var requiredFields = []string{"name", "sprites", "types", "height", "weight"}

// decodePokemon rejects bodies that are valid JSON but not a pokemon record,
// such as null, {} or a list page
func decodePokemon(body []byte) (*Pokemon, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return nil, fmt.Errorf("missing field %q", name)
		}
	}

	var pokemon Pokemon
	if err := json.Unmarshal(body, &pokemon); err != nil {
		return nil, err
	}

	if pokemon.Name == "" {
		return nil, errors.New("empty pokemon name")
	}

	return &pokemon, nil
}
