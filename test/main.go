package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/infinivision/tagfs/fs"
)

func main() {
	dir, err := os.MkdirTemp("", "tagfs")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	cfg := fs.DefaultConfig()
	cfg.Path = filepath.Join(dir, "tag.fs")
	db, err := fs.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	{
		for i := 0; i < 100; i++ {
			if err := db.Set([]byte(fmt.Sprintf("/u/b/u_%v", i)), []byte(fmt.Sprintf("%v", i))); err != nil {
				log.Fatal(err)
			}
		}
	}
	{
		for i := 0; i < 100; i++ {
			if v, err := db.Get([]byte(fmt.Sprintf("/u/b/u_%v", i))); err != nil {
				log.Fatal(err)
			} else {
				if bytes.Compare(v, []byte(fmt.Sprintf("%v", i))) != 0 {
					log.Fatal(fmt.Errorf("%s is not %v - %v\n", fmt.Sprintf("/u/b/u_%v", i), fmt.Sprintf("%v", i), v))
				}
			}
		}
	}
	{
		if err := db.Set([]byte("boot"), []byte{0xFF, 0xFF, 0xFF, 0xFF}); err != nil {
			log.Fatal(err)
		}
		if err := db.WriteUint32At([]byte("boot"), 0, 0x12653487); err != nil {
			log.Fatal(err)
		}
		if v, err := db.ReadUint32At([]byte("boot"), 0); err != nil || v != 0x12653487 {
			log.Fatal(fmt.Errorf("boot word is %x: %v", v, err))
		}
	}
	{
		if err := db.Close(); err != nil {
			log.Fatal(err)
		}
		db, err = fs.Open(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		for i := 0; i < 100; i++ {
			if v, err := db.Get([]byte(fmt.Sprintf("/u/b/u_%v", i))); err != nil {
				log.Fatal(err)
			} else if bytes.Compare(v, []byte(fmt.Sprintf("%v", i))) != 0 {
				log.Fatal(fmt.Errorf("%s lost after reopen", fmt.Sprintf("/u/b/u_%v", i)))
			}
		}
		if err := db.Del([]byte("boot")); err != nil {
			log.Fatal(err)
		}
		if db.Has([]byte("boot")) {
			log.Fatal(fmt.Errorf("boot still present after erase"))
		}
	}
	fmt.Println("ok")
}
