// Package assist contains the prompt construction for the lead
// intelligence and requirement translation features. Both modules are
// string assembly around the llm boundary; they carry no analytical
// logic of their own.
package assist
