// Package client opens ETP 1.2 sessions against a store.
//
// Dial upgrades the websocket with Basic credentials and the ETP
// sub-protocol, sends Core.RequestSession and waits for Core.OpenSession:
//
//	s, err := client.Dial(ctx, "wss://store.example.com/etp", client.Options{
//	    User:     "reader",
//	    Password: os.Getenv("ETP_PASSWORD"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.CloseSession(s, "done")
//
// A ProtocolException answer is returned as *etperr.ProtocolException.
//
// GetServerCapabilities fetches the well-known capabilities document over
// plain HTTP(S) without opening a session.
package client
