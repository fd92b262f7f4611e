package commands

import "github.com/bwmarrin/discordgo"

// PokedexCommand is the name of the pokemon lookup command
const PokedexCommand = "pokedex"

// PokedexOption is the name of the pokemon argument
const PokedexOption = "pokemon"

// Registry returns the commands this bot registers on its guild.
// Each call builds a new table.
func Registry() []*discordgo.ApplicationCommand {
	defaultPermission := true

	return []*discordgo.ApplicationCommand{
		{
			Name:              PokedexCommand,
			Description:       "Looks up a pokemon in the pokedex database.",
			DefaultPermission: &defaultPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        PokedexOption,
					Description: "The name of the pokemon to look up.",
					Required:    true,
				},
			},
		},
	}
}

// Lookup returns the registered command with name
func Lookup(name string) (*discordgo.ApplicationCommand, bool) {
	for _, cmd := range Registry() {
		if cmd.Name == name {
			return cmd, true
		}
	}

	return nil, false
}
