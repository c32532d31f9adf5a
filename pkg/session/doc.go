// Package session implements the ETP 1.2 message session.
//
// A Session owns one websocket transport and the schema registry. It frames
// outgoing messages, numbers them, applies the negotiated compression and
// extension policy and writes each message as one binary frame. ReadMessage
// decodes incoming frames, answers Core.Ping and sends acknowledgements on
// request before handing the message to the caller.
//
// # Lifecycle
//
//	conn, _, err := dialer.Dial(url, header)
//	s := session.New(session.NewWebSocketTransport(conn),
//	    session.WithLogger(logger),
//	    session.WithMetrics(metrics),
//	)
//	defer s.Close()
//
//	id, err := s.SendMessage(messages.DefaultRequestSession(),
//	    protocol.CoreRequestSession, 0, protocol.DefaultFlags(), nil)
//	hdr, msg, err := s.ReadMessage()
//
// The session starts unopened. Compression and header extensions stay off
// until SetSessionOpen records what the peer agreed to. The client package
// runs the RequestSession/OpenSession exchange and calls it.
//
// # Concurrency
//
// A Session is driven by one goroutine. It is not safe for concurrent use;
// ReadMessage may itself write (Pong, Acknowledge) while it runs.
package session
