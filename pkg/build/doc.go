// Package build automates the native deliverables: it fetches the binding
// generator, provisions a virtual environment, drives CMake to build the
// computational library and its binding module, assembles an installable
// package with platform-specific library names and installs the wheel.
//
// Every external process goes through ports.CommandRunner, so plans can be
// printed (dry run) or verified in tests without touching the toolchain.
package build
