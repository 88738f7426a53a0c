// Package verify provides structural validation for arena images. These
// helpers are used in tests to ensure allocator invariants are maintained
// after every public operation.
package verify
