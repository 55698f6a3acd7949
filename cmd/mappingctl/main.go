// Command mappingctl loads mapping files and reports the resolved
// association metadata.
package main

func main() {
	Execute()
}
