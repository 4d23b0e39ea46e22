package inter

// Action names a permission checked by the authorizer.
type Action string

const (
	// ActionAdmin grants every configuration action and role management.
	ActionAdmin Action = "admin"
	// ActionConfigure covers species settings, prices and the reward ratio cap.
	ActionConfigure Action = "configurator"
	// ActionSetBlockHash covers publishing block-hash records.
	ActionSetBlockHash Action = "blockhash-oracle"
	// ActionSignDuel marks the keys whose duel outcomes are trusted.
	ActionSignDuel Action = "duel-signer"
)

// Actions lists all known actions.
var Actions = []Action{ActionAdmin, ActionConfigure, ActionSetBlockHash, ActionSignDuel}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == name {
			return a, true
		}
	}
	return "", false
}
