package cmd

import (
	"fmt"

	"github.com/lepinkainen/videocatalog/types"
)

type VersionCmd struct{}

func (cmd *VersionCmd) Run(appCtx *types.AppContext) error {
	fmt.Printf("videocatalog %s\n", appCtx.AppVersion())
	return nil
}
