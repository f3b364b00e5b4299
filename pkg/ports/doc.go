/*
Package ports defines the driven ports (interfaces) of the commandbar engine.

These interfaces decouple toolbar derivation from the host: where state trees are kept, how
concurrent access is coordinated and what happens to the intents produced by item activation.

# Key Interfaces

  - IntentSink: accepts the intents produced when a toolbar item is activated.
  - TreeStore: persists and loads per-session state trees.
  - DistributedLocker: serialises access to a session across replicas.
  - ToolbarEngine: the derivation surface consumed by transport adapters (HTTP, MCP).
*/
package ports
