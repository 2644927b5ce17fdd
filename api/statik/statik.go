// Code generated by statik. DO NOT EDIT.

package statik

import (
	"github.com/rakyll/statik/fs"
)


func init() {
	data := "PK\x03\x04\x14\x00\x08\x00\x08\x00Bc\x1f]\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\n\x00	\x00index.htmlUT\x05\x00\x01\xddr\x95j\x94Vmo\xdb6\x10\xfe\x9e_qe6@\x06\x1c\xc9N\xea\xae\x93%\x0d[\xd3a\x052\xf4-\x1d0\x14\xc5J\x8b'\x8b+E\xaa\x14\xe5\xc4s\xf3\xdf\x07\x8a\x94,;k\xbb\xfa\x83%\xde\x1b\xef\x9e{\x8eT\xf2\xe0\xf2\xf9\x93\xeb?_<\x85\xd2T\";I\xec\x03\x04\x95\xeb\x94\xa0$V\x80\x94e'\x00I\x85\x86B^R\xdd\xa0IIk\x8a\xb3\xc7\xa4S\x18n\x04f\xa6]!\x13I\xe4VV\xde\x98\xad{\x03X)\xb6\x85\x1d\x14J\x9a\xb3\x82V\\lch\xa8l\xce\x1a\xd4\xbcXBEo\xcfn83e\x0c\x8f\x1e\xce\xea[+\xd1k.c8\xc7\nhk\xd4\x12\xee\xbaH\x05G\xc1\x1a4\xb0\x83\x95\xd2\x0cu\x0c\xf3\xfa\x16\x1a%8\x83\xd3<\xcf{\xd7\xb3\x952FU1\xcc\xb1\xea\x9dOWT\xc3\x0e\xfcN\xf3\xd9\xec\xfb%\x94\xc8\xd7\xa5\x89a\x1e\x9e[\xc3\x15\xcd?\xac\xb5j%\x8b\xe1\x14\x11\x07\xd7\x82\x0b\x01\xbb\xbdy\xe7\xec#\xcd\x8e\xfc\x1e\xe6?\x0e~\x8d\xa1\xa6m`\x07\xb9\x12J\xc7p\xbaX,\x06%j\xad\xf4H\x97_\\8]\x12y\xf4\x92\xc85 \xb1\x10v\xb0\x96\xf3\x01\xebr\xdeI\n\xa5+\xe0,%L\x10\x87w\xd2\xc3\xe4\x96\x00\x89\xa0+\x14\xd9\x9bWW\x90pY\xb7\x06\xcc\xb6\xc6\x94\xb4Z\x10\x90\xb4\xea_\x1b\xfe\x0f\xa6d1#\xa0\xf1c\xcb5\xb2,\x89\x9co\xb2\xd2G\xd1\xae\xb75z\x89m7\n\xcc\x8d\x0f\xc6\xd4\x8d\x14\x8a\xb2\xbf\xec6\xa4K\xee\x03\x97\x8cd\x83=@\xa2j\xc3\x95\x84\x0d\x15-\xa6d\xc3\x19*\x92\xfda\x1fI\xe4t_0\xa7-\xe3\x8ad?\xdb\x07\x04U}1\xb9\xef\x94D.\xa9!o_\xcaa\x19/[*\xb8\xd9~\xa6\x92\x8fN\xebj\xe8\x17\xd9\xd7\"\xafZc\x94\xf4 7\xed\xaa\xe2\x86d\x97\x1e\x94$rj\xdf\xabh\xdc\xac$\xb2\xdd\xccN\xec+\xe3\x9bn\xd7\x15\xd5$\x1bV\x96\x886\x01\xc67\xfe\xdf\xda\xd6Y\xd2\xd4Tv\x16\x8er$\xe3L`\x12Yq\x06{m\xaeZi\x9a\xae\x04\xabI\xa2\xda\x05\xe8\x94\xdd\xf4\x92#a\xc7R/\xec\x06;\xd7\xbc\xf6\xa5\xe7J6\x06\x1c.\x1c\x1bHa\x07]'cx{\xf1h6\x85\x1f\xcegS\x98\xcf\x1e\xcf\xdeM\xa1\xebY\x0co\xe7Vq\xbex4\x85\x8b\xf3\xd9;\xb8[\x8eBY\x9a@\nL\xe5m\x85\xd2\x84k4O\x05\xda\xd7_\xb6\xcfX\xe0h4Y\xde\xdb|\xfb%\xa7\xbeo\x93\xe5\x89;EZ\x99wd\xb2`\xbe\xec\x93\x0f&\xb0\xf3\x0d\xf4\x0e!\x97\x12\xf5o\xd7\xbf_A\n\x84,\xbd\xb6P\x1a\x02\xbf9\xa8b_\xfe[\x9b]\xd81\xf4\xdd>X\x9f\xa8\x1a\xa7\x98k\xa4\x06}\x96\x01q\xd4\xed\x0b\xb3?\xe5\xe2@\n\x1f\xc7B\x83\xb7\xe6\x89\x92\x06\xa59T\xf5)\xd3\xbaF\xc9\x9e\x94\\\xb0@\x0d\xf1\xdc\x81\xe3\xfe\xbb$)cO7(\xcd\x15o\x0cJ\xd4\x01\xc9K*\xd7H\xa6\x87\xa0\xf8\x08G@y\x1c\x05\x1a0\xbcB\x0d)\xc8V\x08/\xa6\xcdV\xe6{\x90k%\xc4\x08[\x07\x86\xee\xc8Bo(7P\xa0\xc9\xcb\x80D\xb5Vk\x8dM\xb3\x87\xc1\xd9\xd6\x83\xa5\xc6&\xfc\xbbQ2\x18,>\xdb\xf3nN&aw\x8e\x86\xddA\x0d)\xd4a\xbf\xc7W\xfd\xfd\x14M\x8e\x10\xafC\xa7\xf8\xaa\xbf\x9f\xb3#\xff\xa1]uh\x94\xa1\x022\x98\xc3O\xf0>\xf8nW\x87y\xab5Js\x17\xd9E\xa7\xbe\x9b\xbc\x87x\xc4\xbc\xcf\xee\xe6\x06\xf7~\xb2\x9d\x1c>}\xfa?1\xdc\x9c\xdf\x8f\xe1n\xa9\x83\x18\xbc\x80\xa0G\x02\xd24\x05Rp\xc9\x9b\x12\x19\xb1\x86\x87*\x1fw<\x0f\x02\xa9~&\x0d\xea\x0d\x15A\xc7\xa0\x11\xf3\x0f\x19\xe5d=\x7fO\xbeX\x01\xb3\x1d\xbf\xcfl\x7f\x00O=1\x03\xdcL \xcd\x86|p\x13\xd6\x1a\xad\xcb%\x16\xb4\x15&8\xe2\xdf\x7fq\xb5\xbf\xe1\xc8tTW\x85\xa6T,\x06\xf2\xe2\xf9\xebk2\x1d\xe4\xf6\xf2\x8eA\xe2\x0d\xbcyu\xf5\x1a\xa9\xce\xcb\x17T\xd3\xaa	\xac\xecW\xa5\xabKjh\x80\x9b\xd0P\xbdF3\x99\xf4\xbew\x931\xe4\x0f,\xff\xd5\x871\x94\xdf\xd8\xcd\xfd\x18Yy0B]\xa3i\xb5<\xc4\xfb\x9b\xc3\x1f2\xe4\x81\xeb\xec\xd0\xd0\x06\xcd\xd0t{(La1\x9b\xf9\x14\\\xa1I\xd4_.I\xe4\xbex\x92\xc8}\x99\xfe\x1b\x00\x00\xff\xffPK\x07\x08b\xd5\n\xd6^\x04\x00\x00\xaa\n\x00\x00PK\x01\x02\x14\x03\x14\x00\x08\x00\x08\x00Bc\x1f]b\xd5\n\xd6^\x04\x00\x00\xaa\n\x00\x00\n\x00	\x00\x00\x00\x00\x00\x00\x00\x00\x00\xa4\x81\x00\x00\x00\x00index.htmlUT\x05\x00\x01\xddr\x95jPK\x05\x06\x00\x00\x00\x00\x01\x00\x01\x00A\x00\x00\x00\x9f\x04\x00\x00\x00\x00"
		fs.Register(data)
	}
	