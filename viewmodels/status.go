package viewmodels

// GetStatusResponse reports what this instance serves
type GetStatusResponse struct {
	Message     string   `json:"message"`
	Commands    []string `json:"commands"`
	PokeAPI     string   `json:"poke_api"`
	ReplayGuard bool     `json:"replay_guard"`
}
