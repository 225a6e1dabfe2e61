// Copyright © 2018 Kowala SEZC <info@kowala.tech>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kowala-tech/ballot/ledger/rpcclient"
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/services/fetcher"
	"github.com/kowala-tech/ballot/services/voting"
	"github.com/kowala-tech/ballot/types"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile represents the config file path.
	cfgFile string

	// verbosity sets the verbosity level.
	verbosity string

	// endpoint is the ledger node's JSON-RPC URL.
	endpoint string

	// account is the sender address used for votes and lifecycle actions.
	account string

	// httpTimeout bounds each rpc request.
	httpTimeout time.Duration
)

const rootCmdLongDesc = `ballot synchronizes on-chain voting dashboards and casts votes.

It reads ballot objects from a ledger node in rate-limit-friendly batches,
caches them per dashboard, and submits vote transactions with an expiry
precheck and a bounded confirmation wait.`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ballot",
	Short: "Ledger voting client",
	Long:  rootCmdLongDesc,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.SetVerbosity(verbosity)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ballot.yaml)")
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "info", "sets the logger verbosity level ('debug', 'info', 'warn', 'error', 'dpanic', 'panic', 'fatal')")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:9000", "JSON-RPC URL of the ledger node")
	rootCmd.PersistentFlags().StringVar(&account, "account", "", "sender account address")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "http-timeout", 30*time.Second, "per-request http timeout")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ballot" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".ballot")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *rpcclient.Client {
	return rpcclient.New(rpcclient.Config{
		Endpoint:    viper.GetString("endpoint"),
		HTTPTimeout: httpTimeout,
		Account:     types.Address(viper.GetString("account")),
	})
}

func newFetcher(client *rpcclient.Client) *fetcher.Service {
	return fetcher.New(client, fetcher.DefaultConfig)
}

func newVoting(client *rpcclient.Client) *voting.Service {
	return voting.New(client, client, voting.DefaultConfig)
}
