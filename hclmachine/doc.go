// Package hclmachine loads state machine definitions written in HCL.
//
// A file holds one or more machine blocks:
//
//	machine "door" {
//	  initial = "closed"
//	  context = { opens = 0 }
//	  filter  = ctx.opens <= 3
//
//	  events "knock" {
//	    values = [{ loud = true }, { loud = false }]
//	  }
//
//	  state "closed" {
//	    on "open" {
//	      target = "opened"
//	      cond   = ctx.opens < 3
//	      assign = { opens = ctx.opens + 1 }
//	    }
//	  }
//
//	  state "opened" {
//	    initial = "wide"
//	    on "close" { target = "closed" }
//	    state "wide" {}
//	    state "ajar" {}
//	  }
//	}
//
// The context is a cty object. Guards (cond), updates (assign, entry, exit)
// and event values are HCL expressions that see the context as ctx and the
// event being handled as event. The machine-level filter sees ctx and the
// resulting state as state.
//
// An on block without a target is an internal transition, unless it sets
// reenter or ignore.
package hclmachine
