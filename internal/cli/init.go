package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized verdant storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
