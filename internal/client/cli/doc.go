// Package cli provides the interactive ResumeCraft command-line client.
//
// It wires configuration, the API client, the aggregate store and an
// interactive REPL for authoring resumes. Typical flow: register or log in,
// create or open a resume, then edit its sections one at a time.
//
// Key features:
//   - Register / Login / Logout
//   - Resume management: list, create, open, show, update, delete
//   - Section editing: personal info, work experience, education, skills
//   - Account management: profile, password, statistics
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
