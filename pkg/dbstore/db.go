// Package dbstore keeps downloaded candles in per-market tables so
// they can be listed and re-used without hitting the exchange again.
package dbstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"xorm.io/xorm"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Algovate/crypto-fetcher/pkg/common"
)

var (
	tblRegexp = regexp.MustCompile(`^([A-Za-z0-9]+)_([A-Za-z0-9]+)_([A-Za-z0-9]+)$`)
)

// Config db section of the config file
type Config struct {
	Type string `mapstructure:"type"`
	URI  string `mapstructure:"uri"`
}

// TableInfo one kline table of the store
type TableInfo struct {
	Exchange string
	Symbol   string
	BinSize  string
}

type DBStore struct {
	dbType string
	dbPath string
	engine *xorm.Engine
	tbls   sync.Map
}

// LoadDB open the store described by the db section of cfg. Defaults
// to a sqlite file under ~/.crypto-fetcher.
func LoadDB(cfg *viper.Viper) (db *DBStore, err error) {
	var dbCfg Config
	err = mapstructure.Decode(cfg.GetStringMap("db"), &dbCfg)
	if err != nil {
		return
	}
	if dbCfg.Type == "" {
		dbCfg.Type = "sqlite"
	}
	if dbCfg.URI == "" {
		var home string
		home, err = homedir.Dir()
		if err != nil {
			return
		}
		dir := filepath.Join(home, ".crypto-fetcher")
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return
		}
		dbCfg.URI = filepath.Join(dir, "data.db")
	}
	return NewDBStore(dbCfg.Type, dbCfg.URI)
}

// NewDBStore support sqlite,mysql,pg
func NewDBStore(dbType, dbURI string) (dr *DBStore, err error) {
	dr = new(DBStore)
	dr.dbType = dbType
	dr.dbPath = dbURI
	dr.engine, err = xorm.NewEngine(dbType, dbURI)
	if err != nil {
		err = fmt.Errorf("init db failed:%s", err.Error())
		return
	}
	return
}

// Close close db
func (dr *DBStore) Close() (err error) {
	if dr.engine != nil {
		err = dr.engine.Close()
	}
	return
}

// SetDebug set debug mode
func (dr *DBStore) SetDebug(bDebug bool) {
	dr.engine.ShowSQL(bDebug)
}

// GetKlineTbl get kline table, create the handle on first use
func (dr *DBStore) GetKlineTbl(exchange, symbol, binSize string) *KlineTbl {
	key := fmt.Sprintf("%s_%s_%s", exchange, cleanSymbol(symbol), binSize)
	v, ok := dr.tbls.Load(key)
	if ok {
		return v.(*KlineTbl)
	}
	t := NewKlineTbl(dr, exchange, symbol, binSize)
	dr.tbls.Store(key, t)
	return t
}

func (dr *DBStore) getTables() (tbls []string, err error) {
	allTbls, err := dr.engine.DBMetas()
	if err != nil {
		return
	}
	for _, v := range allTbls {
		tbls = append(tbls, v.Name)
	}
	return
}

// GetKlineTables list the kline tables present in the store
func (dr *DBStore) GetKlineTables() (tbls []TableInfo, err error) {
	tblNames, err := dr.getTables()
	if err != nil {
		return
	}
	for _, v := range tblNames {
		ret := tblRegexp.FindAllStringSubmatch(v, -1)
		if len(ret) != 1 || len(ret[0]) != 4 {
			continue
		}
		_, err = common.GetBinSizeDuration(ret[0][3])
		if err != nil {
			err = nil
			continue
		}
		tbls = append(tbls, TableInfo{Exchange: ret[0][1], Symbol: ret[0][2], BinSize: ret[0][3]})
	}
	return
}

func (dr *DBStore) logError(op string, err error) {
	if err != nil {
		log.Errorf("dbstore %s failed: %s", op, err.Error())
	}
}
