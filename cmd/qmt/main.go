// Command qmt evaluates geometry scripts and extracts 2D cross-sections
// from the 3D device assemblies they describe.
package main

func main() {
	Execute()
}
