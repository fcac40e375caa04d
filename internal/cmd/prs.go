package cmd

// PRsCmd manages tracked pull requests
type PRsCmd struct {
	Add  PRsAddCmd  `cmd:"add" help:"Start tracking a pull request by its link"`
	Del  PRsDelCmd  `cmd:"del" aliases:"rm" help:"Stop tracking a pull request"`
	List PRsListCmd `cmd:"list" help:"List tracked pull requests" default:"1"`
	Open PRsOpenCmd `cmd:"open" help:"Open a tracked pull request in the browser"`
}
