package cmd

import (
	"time"

	client "github.com/hugolgst/rich-go/client"

	"noteplayer/logging"
	"noteplayer/notation"
)

// startPresence logs in to Discord rich presence and returns a hook that
// shows the current event, plus a function that logs out again. Both are
// nil when presence is unavailable.
func startPresence(appID string) (func(notation.Event), func()) {
	if appID == "" {
		logging.Errorf("discord rpc: discord_app_id is not set")
		return nil, nil
	}
	if err := client.Login(appID); err != nil {
		logging.Errorf("discord rpc login: %v", err)
		return nil, nil
	}
	now := time.Now()
	show := func(ev notation.Event) {
		if err := client.SetActivity(client.Activity{
			State:   "noteplayer",
			Details: ev.Describe(),
			Timestamps: &client.Timestamps{
				Start: &now,
			},
		}); err != nil {
			logging.Debugf("discord rpc activity: %v", err)
		}
	}
	return show, client.Logout
}
