// Command smtsolve decides linear integer and real arithmetic problems
// written in SMT-LIB 2 using Z3.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
