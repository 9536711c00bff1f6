// Provides platform-appropriate default paths for build trees.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS. The tool name "kiln" is used as the subdirectory under each base
// path. The base directory holds everything a build produces except the
// final artifact, which is deliberately placed outside it so that it
// survives cleanup.
package paths
