/*
Package ports defines the interfaces between the strata core and its adapters.

These interfaces decouple the stress evaluation and sampling logic from
storage backends, document sources and process execution, so the same core
can be driven from the CLI, the HTTP API or an MCP agent.

# Key Interfaces

  - Evaluator: the stress-field contract (point in, 6-component tensor out).
  - FieldCache: stores sampled grid fields (Memory or Redis).
  - DistributedLocker: serialises duplicate grid computations across replicas.
  - SceneLoader: loads scene documents (Loam or Memory).
  - CommandRunner: executes external build commands.
*/
package ports
