// Package script executes an ordered batch of command executions defined in
// a YAML or JSON document. Each step is a full execution configuration;
// steps run sequentially and the first failing step aborts the batch.
package script
