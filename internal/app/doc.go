// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the lint lifecycle: discover documents, load
// them, expand `extends`, compose them and render the results. It is
// decoupled from any specific entrypoint like a CLI.
package app
