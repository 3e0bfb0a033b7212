// Package manifest loads module discovery metadata from HCL files.
//
// A manifest declares modules and, optionally, the ancestry of the
// interfaces they implement:
//
//	module "com.acme.push.FcmPusher" {
//	  description = "FCM push transport"
//	  category    = "push"
//	  group       = "vendor"
//	  lazy        = true
//	  priority    = 10
//	  implements  = ["com.acme.push.Pusher"]
//	}
//
//	interface "com.acme.push.Pusher" {
//	  extends = ["com.acme.core.Service"]
//	}
//
// `lazy` defaults to true and `priority` to 0. Interfaces without declared
// ancestry need no interface block.
//
// The loaded Model is the registry's discovery input: Seeds() produces the
// descriptor seeds and the Model itself serves as the interface parent
// source. Validate performs a strict parity check between manifest identities
// and the Go factories bound into the binary, in both directions, so a
// mismatch between code and manifests is caught at startup instead of
// surfacing as an absent module at first lookup.
package manifest
