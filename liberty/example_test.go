package liberty_test

import (
	"fmt"
	"log"

	"github.com/lswang2/liberty-parser/liberty"
)

func ExampleParse() {
	src := []byte(`library(demo) {
  cell(INV) {
    pin(Y) {
      function: "A'";
    }
  }
}`)
	library, err := liberty.Parse(src)
	if err != nil {
		log.Fatal(err)
	}
	cell, err := liberty.SelectCell(library, "INV")
	if err != nil {
		log.Fatal(err)
	}
	pin, err := liberty.SelectPin(cell, "Y")
	if err != nil {
		log.Fatal(err)
	}
	fn, err := pin.GetBooleanFunction("function")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cell.Name, cell.Args[0])
	fmt.Println(fn)
	// Output:
	// cell INV
	// !A
}

func ExampleGroup_Format() {
	g := liberty.NewGroup("cell", "AND2")
	g.SetAttr("area", liberty.NumberValue(4))
	g.SetAttr("cell_leakage_power", liberty.UnitValue(0.1, "nW"))
	fmt.Println(g.Format())
	// Output:
	// cell (AND2) {
	//   area: 4;
	//   cell_leakage_power: 0.1nW;
	// }
}
