// Package errors renders etperr errors for the terminal.
//
// PrintError writes a coded error as a colored block with its category and
// cause:
//
//	ERROR E200: WebSocket transport failed (dial wss://store/etp: 401 Unauthorized)
//	  category: transport
//	  cause: websocket: bad handshake
//
// Colors are on by default; DisableColors turns them off for pipes and
// NO_COLOR terminals.
package errors
