// Package remote runs forms on a terminal at the other end of a websocket.
//
// A Server hosts one form. Each websocket session gets its own Device, a
// terminal.Device whose key events arrive from the client and whose screen
// operations are sent back as messages. A Client dials a server, forwards
// the keys of a local terminal and replays the operations on it, so the
// person at the client answers the form as if it ran locally.
//
// # Wire Format
//
// Every websocket message is a JSON text frame holding one Message:
//
//	client -> server  {"type":"hello","rows":24,"cols":80,"color":"TrueColor"}
//	server -> client  {"type":"welcome","title":"Onboarding","version":"v1.0.0"}
//	client -> server  {"type":"key","key":"enter"}
//	server -> client  {"type":"op","op":"write_line","text":"? Name?"}
//	client -> server  {"type":"resize","rows":40,"cols":120}
//	server -> client  {"type":"done","text":"name: Ada\n"}
//	server -> client  {"type":"error","error":"..."}
//
// Key names are the ones terminal.Key.String produces.
//
// # Discovery
//
// Servers can announce themselves over mDNS as _termask._tcp services.
// Scanner browses for them and returns Endpoints to dial.
package remote
