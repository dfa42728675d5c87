/*
Package config holds the run configuration for unsize.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Describes one run: root directory, optional backup root, dry-run flag
- Loads optional defaults from a config file
- Validates the run before any file is touched

🔄 Flow:
1. Optional config file is parsed by the parser registered for its extension
2. Command line flags override file values
3. Validate checks the filesystem and patterns once, at startup

A Config is not modified after Validate returns; the rest of the program
only reads it.

🔍 Example:

	cfg, err := config.Load(ctx, ".unsize.hcl")
	cfg.Root = "./public"
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
